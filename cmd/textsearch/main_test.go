package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A"), []byte("cat dog cat"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B"), []byte("dog"), 0o644))
	return dir
}

func TestRun(t *testing.T) {
	dir := sampleDir(t)
	var out bytes.Buffer

	code := run(context.Background(), []string{"textsearch", dir}, strings.NewReader("cat\ndog\n123\n"), &out)
	require.Equal(t, 0, code)

	got := out.String()
	require.Equal(t, 2, strings.Count(got, "Assigning child with PID"))
	require.Equal(t, 3, strings.Count(got, "Enter string to search for:\t"))
	require.Equal(t, 2, strings.Count(got, "Total matches:\t2\n"))
	require.Equal(t, 2, strings.Count(got, "exited with status 0"))
	require.True(t, strings.HasSuffix(got, "All children successfully exited\n"))
}

func TestRunFailures(t *testing.T) {
	empty := t.TempDir()
	badConfig := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(badConfig, []byte("collect: sideways\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no directory", args: []string{"textsearch"}, want: "Usage:\n\ttextsearch <directory of files>"},
		{name: "two directories", args: []string{"textsearch", empty, empty}, want: "Usage:"},
		{name: "missing directory", args: []string{"textsearch", filepath.Join(empty, "nope")}, want: "Directory not found\n"},
		{name: "empty directory", args: []string{"textsearch", empty}, want: "No files in directory\n"},
		{name: "bad collect flag", args: []string{"textsearch", "-collect", "sideways", empty}, want: "invalid collect mode"},
		{name: "bad config file", args: []string{"textsearch", "-config", badConfig, empty}, want: "invalid collect mode"},
		{name: "unknown flag", args: []string{"textsearch", "-bogus", empty}, want: "flag provided but not defined"},
		{name: "worker limit", args: []string{"textsearch", "-max-workers", "1", sampleDir(t)}, want: "worker limit reached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader(""), &out)
			require.Equal(t, 1, code)
			require.Contains(t, out.String(), tt.want)
			require.NotContains(t, out.String(), "Assigning child")
		})
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := sampleDir(t)
	cfgPath := filepath.Join(t.TempDir(), "textsearch.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("prompt: \"\"\ncollect: unordered\n"), 0o644))

	var out bytes.Buffer
	code := run(context.Background(), []string{"textsearch", "-config", cfgPath, dir}, strings.NewReader("cat\n."), &out)
	require.Equal(t, 0, code)
	require.NotContains(t, out.String(), "Enter string")
	require.Contains(t, out.String(), "Total matches:\t2\n")
}

func TestRunCancelled(t *testing.T) {
	dir := sampleDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := run(ctx, []string{"textsearch", dir}, strings.NewReader("cat\n"), &out)
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "All children successfully exited")
}
