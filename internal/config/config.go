package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Collection modes for gathering a round's results.
const (
	CollectOrdered   = "ordered"   // block on worker 0, then worker 1, ...
	CollectUnordered = "unordered" // first to finish is reported first
)

// DefaultPrompt is printed before every read from the operator.
const DefaultPrompt = "Enter string to search for:\t"

type Config struct {
	RootPath string `yaml:"-"`
	Verbose  bool   `yaml:"verbose"`

	// Collect selects how results are gathered each round
	Collect string `yaml:"collect"`

	// MaxWorkers caps how many workers may be spawned, 0 means no cap.
	// Exceeding it fails pool creation the same way a fork limit would.
	MaxWorkers int `yaml:"max_workers"`

	Prompt string `yaml:"prompt"`
}

func DefaultConfig() *Config {
	return &Config{
		Collect: CollectOrdered,
		Prompt:  DefaultPrompt,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Collect {
	case CollectOrdered, CollectUnordered:
	default:
		return fmt.Errorf("invalid collect mode %q (want %q or %q)", c.Collect, CollectOrdered, CollectUnordered)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must not be negative, got %d", c.MaxWorkers)
	}
	return nil
}
