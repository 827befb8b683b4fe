// Package config handles neuro-core configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Shell   ShellConfig   `yaml:"shell"`
	Log     LogConfig     `yaml:"log"`
}

// RuntimeConfig holds registry settings.
type RuntimeConfig struct {
	// Seed for weight initialization. 0 picks a random seed.
	Seed uint64 `yaml:"seed"`
	// EagerShapeCheck rejects networks whose adjacent layer sizes do not
	// chain at construction time instead of at the first forward pass.
	EagerShapeCheck bool `yaml:"eager_shape_check"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Prefix  string `yaml:"prefix"`
	Verbose bool   `yaml:"verbose"` // log every successful call, not only failures
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Seed:            0,
			EagerShapeCheck: false,
		},
		Shell: ShellConfig{
			Prompt:      "neuro> ",
			HistoryFile: ".neuro_history",
		},
		Log: LogConfig{
			Prefix: "neuro ",
		},
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Shell.Prompt) == "" {
		return fmt.Errorf("shell.prompt must not be empty")
	}
	return nil
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns neuro.yaml in the working directory, or
// config/neuro.yaml when only that one exists.
func DefaultConfigPath() string {
	if _, err := os.Stat("neuro.yaml"); err == nil {
		return "neuro.yaml"
	}
	if _, err := os.Stat("config/neuro.yaml"); err == nil {
		return "config/neuro.yaml"
	}
	return "neuro.yaml"
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}

	cfg := Default()
	return cfg.Save(path)
}
