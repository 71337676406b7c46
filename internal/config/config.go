// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/christoffels/menu/internal/infrastructure/database"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the menu service
type Config struct {
	Port                 string        `env:"PORT"                   envDefault:"3001"`
	JWTSecret            string        `env:"JWT_SECRET"             envDefault:"default-secret-change-in-production"`
	SessionTTL           time.Duration `env:"SESSION_TTL"            envDefault:"24h"`
	StoreDriver          string        `env:"STORE_DRIVER"           envDefault:"memory"`
	SessionSweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE" envDefault:"@every 10m"`
	MenuItemRules        []string      `env:"MENU_ITEM_RULES"        envSeparator:";"`
	SeedData             bool          `env:"SEED_DATA"              envDefault:"true"`
	CORSOrigins          []string      `env:"CORS_ORIGINS"           envSeparator:","`
	MetricsEnabled       bool          `env:"METRICS_ENABLED"        envDefault:"true"`

	MySQL MySQLConfig
}

// MySQLConfig is only read when StoreDriver is "mysql"
type MySQLConfig struct {
	Host     string `env:"MYSQL_HOST"      envDefault:"127.0.0.1"`
	Port     string `env:"MYSQL_PORT"      envDefault:"3306"`
	User     string `env:"MYSQL_USER"      envDefault:"root"`
	Password string `env:"MYSQL_PASSWORD"`
	Database string `env:"MYSQL_DATABASE"  envDefault:"menu"`
	MaxConns int    `env:"MYSQL_MAX_CONNS" envDefault:"20"`
}

// Options converts the settings into database connection options
func (m MySQLConfig) Options() database.Options {
	return database.Options{
		Host:     m.Host,
		Port:     m.Port,
		User:     m.User,
		Password: m.Password,
		Database: m.Database,
		MaxConns: m.MaxConns,
	}
}

// Load reads optional .env files, then parses the environment
func Load(envFiles ...string) (*Config, error) {
	for _, p := range envFiles {
		if err := godotenv.Load(p); err == nil {
			log.Printf("📄 Loaded environment from %s", p)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case constants.DriverMemory, constants.DriverMySQL:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want %q or %q)", c.StoreDriver, constants.DriverMemory, constants.DriverMySQL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.Port == "" {
		c.Port = constants.DefaultPort
	}
	return nil
}

// UsesDefaultSecret reports whether JWT_SECRET was left at its development value
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == "default-secret-change-in-production"
}
