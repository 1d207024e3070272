// Package cmd provides the command-line interface for cmsforge with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --output, etc.) - highest priority
//	2. CMSFORGE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (CMSFORGE_OUTPUT_DIR, etc.)
//	4. Configuration files (.cmsforge.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmsforge/cmsforge/internal/config"
	"github.com/cmsforge/cmsforge/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cmsforge",
	Short: "A code-generation assistant for CMS extension modules",
	Long: `cmsforge generates the scaffolding of CMS extension modules from a small
YAML request file: module metadata, plugins, services, entity handlers,
permissions, routing, and configuration schemas.

A request describes what should exist; cmsforge resolves it into a
deduplicated component graph and emits the source files for it.

Quick Start:
  cmsforge generate module.yml        Generate files for a request
  cmsforge list                       List known component types
  cmsforge watch module.yml           Regenerate on request changes

Documentation: https://github.com/cmsforge/cmsforge`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .cmsforge.yml, can also use CMSFORGE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. CMSFORGE_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .cmsforge.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("CMSFORGE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cmsforge")
	}

	// Enable automatic environment variable binding with CMSFORGE_ prefix
	// Examples: CMSFORGE_OUTPUT_DIR, CMSFORGE_COLLECTOR_MAX_DEPTH
	viper.SetEnvPrefix("CMSFORGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing config files are fine; viper falls back to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger from the loaded configuration.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
}
