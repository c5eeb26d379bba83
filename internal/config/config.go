// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads topsecret settings from defaults, a YAML config file,
// TOPSECRET_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName        = "topsecret"
	configFileName = "topsecret.yaml"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir" yaml:"data_dir"`
	KeyPath  string `mapstructure:"key_path" yaml:"key_path"`
	Language string `mapstructure:"language" yaml:"language"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Audit    Audit  `mapstructure:"audit" yaml:"audit"`
}

// Audit configures the optional access history store.
type Audit struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Type    string `mapstructure:"type" yaml:"type"`
	Dsn     string `mapstructure:"dsn" yaml:"dsn"`
}

// Defaults returns the built-in settings keyed by their config path.
func Defaults() map[string]any {
	return map[string]any{
		"data_dir":      "data",
		"key_path":      "ciphers/key.txt",
		"language":      "en",
		"log_level":     "warn",
		"audit.enabled": false,
		"audit.type":    "sqlite",
		"audit.dsn":     "./topsecret.db",
	}
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"data_dir":  "data-dir",
	"key_path":  "key",
	"language":  "lang",
	"log_level": "log-level",
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), appName)
		default:
			configDir = filepath.Join("/etc", appName)
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, appName)
	}

	return filepath.Join(configDir, configFileName), nil
}

// LoadConfig resolves a T from defaults, the config file, the environment
// and the flags of cmd. configFile, when non-nil and non-empty, replaces the
// config file search. A missing config file found by search is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
	v.SetConfigType("yaml")

	if configFile != nil && *configFile != "" {
		if _, err := os.Stat(*configFile); err != nil {
			return c, fmt.Errorf("config file %s: %w", *configFile, err)
		}
		v.SetConfigFile(*configFile)
	} else {
		if userConfigPath, err := GetConfigPath(false); err == nil {
			v.AddConfigPath(filepath.Dir(userConfigPath))
		}
		if systemConfigPath, err := GetConfigPath(true); err == nil {
			v.AddConfigPath(filepath.Dir(systemConfigPath))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, name := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Load resolves the application Config.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	c, err := LoadConfig[Config](cmd, Defaults(), &configFile)
	if err != nil {
		return c, err
	}
	c.applyFallbacks()
	return c, nil
}

// applyFallbacks restores defaults for values that a config file blanked out.
func (c *Config) applyFallbacks() {
	d := Defaults()
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = d["data_dir"].(string)
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = d["language"].(string)
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d["log_level"].(string)
	}
	if c.Audit.Type == "" {
		c.Audit.Type = d["audit.type"].(string)
	}
	if c.Audit.Dsn == "" {
		c.Audit.Dsn = d["audit.dsn"].(string)
	}
}

// WriteConfigFile persists c as YAML to the user or system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo persists c as YAML at path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// The audit DSN may carry credentials.
	return os.WriteFile(path, data, 0o600)
}
