package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textsearch.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, CollectOrdered, cfg.Collect)
	require.Equal(t, DefaultPrompt, cfg.Prompt)
	require.Zero(t, cfg.MaxWorkers)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "verbose: true\ncollect: unordered\nmax_workers: 8\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Verbose)
	require.Equal(t, CollectUnordered, cfg.Collect)
	require.Equal(t, 8, cfg.MaxWorkers)
	require.Equal(t, DefaultPrompt, cfg.Prompt, "missing keys keep defaults")
}

func TestLoadEmptyPrompt(t *testing.T) {
	cfg, err := Load(writeConfig(t, "prompt: \"\"\n"))
	require.NoError(t, err)
	require.Empty(t, cfg.Prompt)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad collect mode", body: "collect: sideways\n"},
		{name: "negative worker cap", body: "max_workers: -1\n"},
		{name: "not yaml", body: "collect: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
