// Package config provides configuration loading for kif.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. KIF_STORAGE_DRIVER.
	EnvPrefix = "kif"

	DriverFile   = "file"
	DriverSQLite = "sqlite"

	defaultDirName    = ".kif"
	defaultConfigName = "config.yaml"
)

// Config is the root configuration.
type Config struct {
	DataDir string  `json:"data_dir" mapstructure:"data_dir"`
	Debug   bool    `json:"debug"    mapstructure:"debug"`
	Storage Storage `json:"storage"  mapstructure:"storage"`
	Undo    Undo    `json:"undo"     mapstructure:"undo"`
	Web     Web     `json:"web"      mapstructure:"web"`
}

// Storage selects the task repository.
type Storage struct {
	Driver string `json:"driver"         mapstructure:"driver"`
	Path   string `json:"path,omitempty" mapstructure:"path"`
}

// Undo holds undo policy.
type Undo struct {
	ListClears bool `json:"list_clears" mapstructure:"list_clears"`
}

// Web configures the HTTP front end.
type Web struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("data_dir", filepath.Join(home, defaultDirName))
	v.SetDefault("debug", false)
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("undo.list_clears", true)
	v.SetDefault("web.addr", ":8080")
}

// Load reads configuration into a Config. Sources, lowest priority first:
// defaults, the config file, a .env file in the working directory, KIF_*
// environment variables, and any flags already bound on v.
//
// configPath may be empty, in which case <data_dir>/config.yaml is read when present.
func Load(v *viper.Viper, configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(v.GetString("data_dir"), defaultConfigName)
	}
	if _, err := os.Stat(configPath); err == nil || explicit {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.finalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) finalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Path == "" && c.DataDir != "" {
		name := "tasks.txt"
		if c.Storage.Driver == DriverSQLite {
			name = "tasks.db"
		}
		c.Storage.Path = filepath.Join(c.DataDir, name)
	}
}

// Validate rejects unusable settings.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverFile, DriverSQLite, c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is empty")
	}
	return nil
}
