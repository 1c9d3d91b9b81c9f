// Package config loads the REPL's persistent preferences from a TOML
// file, mirroring the teacher's own dang.toml project-config loader
// (pkg/dang/project.go) adapted from a per-project GraphQL import
// manifest into a per-user shell preferences file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config is the REPL's persistent preferences, loaded from
// janus.toml (walking up from the working directory) or from
// xdg.ConfigHome/janus/config.toml if no project-local file exists.
type Config struct {
	// Prompt is the string shown before each input line.
	Prompt string `toml:"prompt,omitempty"`

	// HistorySize is the history_size setting. The REPL does not read
	// it: xdg.StateHome/janus/history is never truncated to this size.
	HistorySize int `toml:"history_size,omitempty"`

	// Prelude, if set, is a Janus source file `:load`ed automatically
	// when the REPL starts, before the first prompt.
	Prelude string `toml:"prelude,omitempty"`

	// Width, if nonzero, overrides the pretty-printer's target line
	// width; when zero, prettyprint.DefaultWidth is used.
	Width int `toml:"width,omitempty"`
}

// Default returns the preferences a fresh install starts with.
func Default() *Config {
	return &Config{
		Prompt:      "janus> ",
		HistorySize: 1000,
	}
}

// Load parses a janus.toml file at path, filling in Default()'s values
// for anything the file doesn't set.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Find searches for janus.toml starting at dir and walking up to
// parent directories, stopping at a .git boundary — the same
// discovery rule pkg/dang/project.go's FindProjectConfig uses for
// dang.toml. Returns ("", nil, nil) if no project-local config exists.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "janus.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// UserConfigPath is the fallback config location when no project-local
// janus.toml is found: xdg.ConfigHome/janus/config.toml.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "janus", "config.toml")
}

// HistoryPath is where the REPL appends accepted input lines:
// xdg.StateHome/janus/history, per §4.9.
func HistoryPath() string {
	return filepath.Join(xdg.StateHome, "janus", "history")
}

// Resolve loads the REPL's effective configuration: a project-local
// janus.toml found by walking up from dir takes precedence; failing
// that, xdg.ConfigHome/janus/config.toml; failing that, Default().
func Resolve(dir string) (*Config, error) {
	if _, cfg, err := Find(dir); err != nil {
		return nil, err
	} else if cfg != nil {
		return cfg, nil
	}
	userPath := UserConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		return Load(userPath)
	}
	return Default(), nil
}
