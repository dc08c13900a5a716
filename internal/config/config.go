// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads livetable settings from files, environment variables
// and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/livetable/internal/host"
)

// Database selects the SQL backend for tables with source "db".
type Database struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// Server configures the HTTP preview server.
type Server struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config is the top-level configuration.
type Config struct {
	Language string   `mapstructure:"language" yaml:"language"`
	Debug    bool     `mapstructure:"debug" yaml:"debug,omitempty"`
	Database Database `mapstructure:"database" yaml:"database"`
	Server   Server   `mapstructure:"server" yaml:"server"`
	// Views is a glob of template files defining header, footer and cell views.
	Views  string            `mapstructure:"views" yaml:"views,omitempty"`
	Tables []host.Definition `mapstructure:"tables" yaml:"tables,omitempty"`
}

// Defaults returns the default settings keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"language":                "en",
		"debug":                   false,
		"database.type":           "sqlite",
		"database.dsn":            "./livetable.db",
		"server.addr":             "127.0.0.1:8080",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.shutdown_timeout": "10s",
		"views":                   "",
	}
}

// GetConfigPath returns the full path of the user or system configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Livetable")
		default:
			configDir = "/etc/livetable"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "livetable")
	}
	return filepath.Join(configDir, "livetable.yaml"), nil
}

// LoadConfig reads livetable.yaml from the user config directory,
// /etc/livetable or the working directory (or configFile when given), then
// applies LIVETABLE_* environment variables and the flags of cmd. A missing
// configuration file is not an error.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("livetable")
	v.SetConfigType("yaml")
	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}
	if p, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	if p, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("livetable")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to the user or system configuration path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
