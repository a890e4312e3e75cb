// Package config loads pane-runner configuration from file and
// environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANE_RUNNER_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .pane-runner.yaml in current directory
//  2. ~/.config/pane-runner/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all pane-runner configuration.
type Config struct {
	// Multiplexer selection ("tmux"; empty means auto-detect).
	Mux string `yaml:"mux"`

	// Runner pane policy
	Orientation string `yaml:"orientation"` // "vertical" or "horizontal"
	Height      int    `yaml:"height"`      // split size in percent
	UseNearest  bool   `yaml:"use_nearest"` // reuse nearest inactive pane instead of splitting

	// Paste-buffer listing. The listing format changed across tmux
	// versions, so it is configured rather than detected.
	BufferFormat  string `yaml:"buffer_format"`  // "modern" (default) or "legacy"
	BufferPattern string `yaml:"buffer_pattern"` // custom regex override; groups: id, bytes, sample
	BufferByName  bool   `yaml:"buffer_by_name"` // addressing mode when buffer_pattern is set

	// CloneCommand is the editor client spawned by clone-style window
	// commands (the layout replay is the editor's business, not ours).
	CloneCommand string `yaml:"clone_command"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // comma-separated key=value pairs

	// ConfigFile is the path of the loaded file (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Orientation:  "vertical",
		Height:       35,
		BufferFormat: "modern",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if cfg.Orientation != "vertical" && cfg.Orientation != "horizontal" {
		return nil, fmt.Errorf("invalid orientation %q (supported: vertical, horizontal)", cfg.Orientation)
	}
	if cfg.Height < 1 || cfg.Height > 99 {
		return nil, fmt.Errorf("invalid height %d: must be a percentage between 1 and 99", cfg.Height)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".pane-runner.yaml"); err == nil {
		return ".pane-runner.yaml", data, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "pane-runner", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}
	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Mux != "" {
		cfg.Mux = file.Mux
	}
	if file.Orientation != "" {
		cfg.Orientation = file.Orientation
	}
	if file.Height > 0 {
		cfg.Height = file.Height
	}
	if file.UseNearest {
		cfg.UseNearest = file.UseNearest
	}
	if file.BufferFormat != "" {
		cfg.BufferFormat = file.BufferFormat
	}
	if file.BufferPattern != "" {
		cfg.BufferPattern = file.BufferPattern
		cfg.BufferByName = file.BufferByName
	}
	if file.CloneCommand != "" {
		cfg.CloneCommand = file.CloneCommand
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("PANE_RUNNER_MUX"); v != "" {
		cfg.Mux = v
	}
	if v := os.Getenv("PANE_RUNNER_ORIENTATION"); v != "" {
		cfg.Orientation = v
	}
	if v := os.Getenv("PANE_RUNNER_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Height = n
		}
	}
	if v := os.Getenv("PANE_RUNNER_USE_NEAREST"); v == "true" || v == "1" {
		cfg.UseNearest = true
	}
	if v := os.Getenv("PANE_RUNNER_BUFFER_FORMAT"); v != "" {
		cfg.BufferFormat = v
	}
	if v := os.Getenv("PANE_RUNNER_BUFFER_PATTERN"); v != "" {
		cfg.BufferPattern = v
	}
	if v := os.Getenv("PANE_RUNNER_BUFFER_BY_NAME"); v == "true" || v == "1" {
		cfg.BufferByName = true
	}
	if v := os.Getenv("PANE_RUNNER_CLONE_COMMAND"); v != "" {
		cfg.CloneCommand = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
