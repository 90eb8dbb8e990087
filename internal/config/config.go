// Package config loads service settings from environment variables,
// falling back to local-development defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/database"
)

const (
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultDBMaxConns      = 20
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// RoomSeed describes a room created at startup.
type RoomSeed struct {
	Name     string
	Capacity int
}

// Config holds every setting the booking service reads at startup.
type Config struct {
	Port string

	DB database.Config

	JWTSecret string

	LogLevel  string
	LogFormat string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SeedRooms []RoomSeed
}

// Load reads the configuration and validates it. An invalid configuration
// is reported as a single error listing every problem found.
func Load() (*Config, error) {
	seeds, err := ParseRoomSeeds(getEnv("SEED_ROOMS", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port: getEnv("PORT", DefaultPort),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hotelbooking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns)),
		},
		JWTSecret:       os.Getenv("JWT_SECRET"),
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:       getEnv("LOG_FORMAT", DefaultLogFormat),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", DefaultReadTimeout),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		SeedRooms:       seeds,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values and collects all problems.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got: %s", c.Port))
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.DB.Host == "" || c.DB.DBName == "" {
		problems = append(problems, "DB_HOST and DB_NAME cannot be empty")
	}
	if c.DB.MaxConns <= 0 {
		problems = append(problems, fmt.Sprintf("DB_MAX_CONNS must be positive, got: %d", c.DB.MaxConns))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", c.LogLevel))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or console, got: %s", c.LogFormat))
	}
	for name, d := range map[string]time.Duration{
		"READ_TIMEOUT":     c.ReadTimeout,
		"WRITE_TIMEOUT":    c.WriteTimeout,
		"IDLE_TIMEOUT":     c.IdleTimeout,
		"SHUTDOWN_TIMEOUT": c.ShutdownTimeout,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	msg := "configuration validation failed:\n"
	for i, p := range problems {
		msg += fmt.Sprintf("  %d. %s\n", i+1, p)
	}
	return fmt.Errorf("%s", msg)
}

// ParseRoomSeeds parses "name:capacity" pairs separated by commas,
// e.g. "101:3,102:1". An empty string yields no seeds.
func ParseRoomSeeds(raw string) ([]RoomSeed, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var seeds []RoomSeed
	for _, part := range strings.Split(raw, ",") {
		name, capStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("SEED_ROOMS: invalid entry %q, want name:capacity", part)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(capStr))
		if err != nil || capacity < 1 {
			return nil, fmt.Errorf("SEED_ROOMS: capacity for %q must be a positive integer", name)
		}
		seeds = append(seeds, RoomSeed{Name: strings.TrimSpace(name), Capacity: capacity})
	}
	return seeds, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
