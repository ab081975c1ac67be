package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnv             = "development"
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 15 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	DBPath          string
	Port            string
	LogLevel        string
	AutoMigrate     bool
	ShutdownTimeout time.Duration
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// ShouldMigrate reports whether pending migrations are applied at startup.
func (c Config) ShouldMigrate() bool {
	return c.IsDev() || c.AutoMigrate
}

// Load reads environment variables (after a best-effort .env file) and
// returns a validated Config.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		Env:             strings.ToLower(getenv("APP_ENV", defaultEnv)),
		DBPath:          getenv("DB_PATH", defaultDBPath),
		Port:            getenv("PORT", defaultPort),
		LogLevel:        getenv("LOG_LEVEL", defaultLogLevel),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a TCP port number, got %q", cfg.Port)
	}

	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		if cfg.AutoMigrate, err = strconv.ParseBool(raw); err != nil {
			return Config{}, fmt.Errorf("AUTO_MIGRATE must be a boolean, got %q", raw)
		}
	}

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		if cfg.ShutdownTimeout, err = time.ParseDuration(raw); err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration, got %q", raw)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
