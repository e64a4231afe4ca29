// Package config reads the application configuration from the
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Environments
const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

// Config is the full application configuration
type Config struct {
	Env       string `env:"TASKFLOW_ENV" env-default:"local"`
	DataDir   string `env:"TASKFLOW_DATA_DIR"`
	UserID    string `env:"TASKFLOW_USER_ID" env-default:"local"`
	UserEmail string `env:"TASKFLOW_USER_EMAIL" env-default:"local@taskflow.dev"`
	LogLevel  string `env:"TASKFLOW_LOG_LEVEL"`
}

// Load reads configuration from the environment, resolving the data
// directory to ~/.taskflow when unset.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = filepath.Join(home, ".taskflow")
	}

	return cfg, nil
}

// DatabasePath returns the sqlite database location
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "taskflow.db")
}
