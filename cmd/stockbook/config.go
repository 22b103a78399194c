// Config loading for the stockbook CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ledgerline/stockbook/internal/analysis"
)

// Config keys read from config.yaml.
const (
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyAnalysisModel = "analysis_model"
)

// defaultConfigYAML is written to config.yaml on first run so users have
// a commented starting point.
const defaultConfigYAML = `# Stockbook CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Gemini model used by the summarize command
# analysis_model: gemini-2.5-flash
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper, scaffolding the directory and a default file on first run. A
// missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := scaffoldConfig(configDir); err != nil {
		return nil, fmt.Errorf("scaffold config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, "sqlite")
	v.SetDefault(cfgKeyAnalysisModel, analysis.DefaultModel)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// scaffoldConfig creates the config directory and a default config.yaml
// when neither exists yet.
func scaffoldConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(configDir, "config.yaml")
	switch _, err := os.Stat(path); {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
	default:
		return err
	}
}
