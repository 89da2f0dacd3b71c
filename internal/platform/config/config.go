package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ServiceName = "printa-stock"
	DefaultPort = "8080"
)

// Config holds the process configuration read from the environment.
type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
	LogLevel          string
	Development       bool
	AtomicOrders      bool
}

// Load reads envFile (if it exists) into the environment and then builds the
// configuration from it. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:              os.Getenv("APP_PORT"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	var err error
	if cfg.Development, err = envBool("APP_DEV"); err != nil {
		return nil, err
	}
	if cfg.AtomicOrders, err = envBool("ATOMIC_ORDERS"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateAPI checks the settings the HTTP server cannot run without.
func (c *Config) ValidateAPI() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.AdminEmail == "" || c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH environment variables are required")
	}
	return nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
