// Package config provides configuration management for cmsforge using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the CMSFORGE_ prefix, and validation. It manages output
// settings, the framework catalog override, and collector limits.
package config

import (
	"github.com/spf13/viper"

	"github.com/cmsforge/cmsforge/internal/errors"
)

type Config struct {
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Framework FrameworkConfig `yaml:"framework" mapstructure:"framework"`
	Collector CollectorConfig `yaml:"collector" mapstructure:"collector"`
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level"`
	LogFormat string          `yaml:"log_format" mapstructure:"log_format"`
}

type OutputConfig struct {
	// Dir is where generated files are written; empty means print to stdout.
	Dir    string `yaml:"dir" mapstructure:"dir"`
	DryRun bool   `yaml:"dry_run" mapstructure:"dry_run"`
}

type FrameworkConfig struct {
	// Catalog optionally points at a YAML catalog overriding the embedded
	// framework metadata snapshot.
	Catalog string `yaml:"catalog" mapstructure:"catalog"`
}

type CollectorConfig struct {
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth"`
}

// Load materializes the active configuration from viper's merged sources.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "config_unmarshal", "cannot decode configuration")
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(c *Config) error {
	if c.Collector.MaxDepth < 0 {
		return errors.NewConfigError("config_max_depth", "collector.max_depth must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.NewConfigError("config_log_format", "log_format must be text or json")
	}
	return nil
}
