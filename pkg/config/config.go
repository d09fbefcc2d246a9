// Package config loads shellnav settings from a YAML file, SHELLNAV_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SHELLNAV_HOST.
const EnvPrefix = "SHELLNAV"

// Host kinds.
const (
	HostMemory = "memory"
	HostSQLite = "sqlite"
)

// Keys shared by the config file, the environment and flag bindings.
const (
	KeyHost     = "host"
	KeyFixture  = "fixture"
	KeyDB       = "db"
	KeyLogLevel = "log_level"
	KeyMetrics  = "metrics"
)

// Config is the resolved configuration.
type Config struct {
	Host     string `mapstructure:"host" validate:"required,oneof=memory sqlite"`
	Fixture  string `mapstructure:"fixture" validate:"required_if=Host memory"`
	DB       string `mapstructure:"db" validate:"required_if=Host sqlite"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn warning error"`
	Metrics  bool   `mapstructure:"metrics"`
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dir returns the directory holding config.yaml and the default fixture.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "shellnav")
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "shellnav")
}

// New returns a viper instance with defaults, environment overrides and the
// config file in place. cfgFile overrides the default location; a missing
// default file is not an error, a missing explicit one is.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyHost, HostMemory)
	v.SetDefault(KeyFixture, filepath.Join(Dir(), "namespace.yaml"))
	v.SetDefault(KeyDB, filepath.Join(dataDir(), "namespace.db"))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyMetrics, false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
