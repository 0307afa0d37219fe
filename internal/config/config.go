// Package config provides configuration management for the tuga CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultHost is the Tucluster API address used when nothing else is
// configured.
const DefaultHost = "http://localhost:8000"

// Config holds all configuration for the tuga CLI.
type Config struct {
	Host    string        `mapstructure:"host"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
}

// Dir returns the directory holding the tuga config file,
// $HOME/.tuga by default.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".tuga"), nil
}

// Load reads configuration from the config file and environment
// variables. Precedence: environment > file > defaults.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return load(dir)
}

func load(dir string) (*Config, error) {
	v := newViper(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveHost persists the host to the config file, creating the config
// directory on first use. Other settings in the file are preserved.
func SaveHost(host string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return saveHost(dir, host)
}

func saveHost(dir, host string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return err
			}
		}
	}

	v.Set("host", host)

	if err := v.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("host", DefaultHost)
	v.SetDefault("token", "")
	v.SetDefault("timeout", 5*time.Minute)
	v.SetDefault("debug", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("TUGA")
	v.AutomaticEnv()

	return v
}
