package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named pair of templates describing one file naming
// convention.
type Preset struct {
	// PathPattern is the directory template, e.g. "data/{year}". May be
	// empty for flat layouts.
	PathPattern string `yaml:"path_pattern"`

	// FilePattern is the filename template, e.g. "{var}_{year}.nc".
	FilePattern string `yaml:"file_pattern"`
}

// Config represents filefind configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Catalog is an optional path to a Markdown preset catalog
	Catalog string `yaml:"catalog"`

	// Presets maps preset names to template pairs
	Presets map[string]Preset `yaml:"presets"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Presets:  map[string]Preset{},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Presets == nil {
		cfg.Presets = map[string]Preset{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every preset names at least one template.
func (c *Config) Validate() error {
	for name, preset := range c.Presets {
		if preset.PathPattern == "" && preset.FilePattern == "" {
			return fmt.Errorf("preset %q has neither path_pattern nor file_pattern", name)
		}
	}
	return nil
}
