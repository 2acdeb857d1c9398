// Package config loads application settings with viper. Precedence is
// flag > environment > config file > default; flags are bound by the cmd
// layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved application settings.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogFile  string `mapstructure:"logFile"`
	DBPath   string `mapstructure:"dbPath"`
}

// Load reads checkride.json from configDir (or the default XDG config dir
// when configDir is empty). A missing config file is not an error; defaults
// and CHECKRIDE_* environment variables still apply.
func Load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("dbPath", "")

	v.SetEnvPrefix("CHECKRIDE")
	v.AutomaticEnv()
	_ = v.BindEnv("dbPath", "CHECKRIDE_DB")
	_ = v.BindEnv("logLevel", "CHECKRIDE_LOG_LEVEL")
	_ = v.BindEnv("logFile", "CHECKRIDE_LOG_FILE")

	if configDir == "" {
		configDir = defaultConfigDir()
	}
	v.SetConfigName("checkride")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// defaultConfigDir resolves $XDG_CONFIG_HOME/checkride, falling back to
// ~/.config/checkride.
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "checkride")
}
