package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config holds the settings read from the configuration file.
type Config struct {
	// Prompt and Continuation are the REPL prompts for the first and
	// subsequent lines of an expression.
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	// History is the path of the REPL history file. An empty path disables
	// history.
	History string `yaml:"history"`
	// Stdlib controls whether the standard library is loaded.
	Stdlib bool `yaml:"stdlib"`
	// Trace logs each evaluation step to standard error.
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	c := Config{
		Prompt:       ">>> ",
		Continuation: "... ",
		Stdlib:       true,
	}
	if dir, err := os.UserConfigDir(); err == nil {
		c.History = filepath.Join(dir, "lispy", "history")
	}
	return c
}

// DefaultConfigPath returns the default location of the configuration file.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lispy", "config.yaml")
}

// LoadConfig reads a configuration file over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, fmt.Errorf("reading %s: %w", path, err)
	}
	return c, nil
}
