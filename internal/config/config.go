// Package config loads runtime settings from the environment and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	gormlogger "gorm.io/gorm/logger"

	"fitness-tracker-backend/db"
)

type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	Database DBConfig       `mapstructure:",squash"`
	Security SecurityConfig `mapstructure:",squash"`
}

type DBConfig struct {
	Driver   string `mapstructure:"DB_DRIVER"`
	Path     string `mapstructure:"DB_PATH"`
	DSN      string `mapstructure:"DB_DSN"`
	Host     string `mapstructure:"DB_HOST"`
	Port     string `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME"`
	SSLMode  string `mapstructure:"DB_SSLMODE"`
	TimeZone string `mapstructure:"DB_TIMEZONE"`
}

type SecurityConfig struct {
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	FrontendURL        string   `mapstructure:"FRONTEND_URL"`
	RateLimitRPM       int      `mapstructure:"RATE_LIMIT_RPM"`
}

var keys = []string{
	"APP_ENV", "HTTP_ADDR",
	"DB_DRIVER", "DB_PATH", "DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TIMEZONE",
	"CORS_ALLOWED_ORIGINS", "FRONTEND_URL", "RATE_LIMIT_RPM",
}

// Load reads configuration from v. A .env file in the working directory is
// applied first; variables already set in the environment win.
func Load(v *viper.Viper) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v.SetConfigType("env")
	v.AutomaticEnv()
	for _, key := range keys {
		// Unmarshal only sees keys viper knows about.
		_ = v.BindEnv(key)
	}

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8000")
	v.SetDefault("DB_DRIVER", db.DriverSQLite)
	v.SetDefault("DB_PATH", "fitness_tracker.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPM", 0)

	if origins := v.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		v.Set("CORS_ALLOWED_ORIGINS", splitAndTrim(origins))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Security.FrontendURL != "" {
		cfg.Security.CORSAllowedOrigins = append(cfg.Security.CORSAllowedOrigins, cfg.Security.FrontendURL)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case db.DriverSQLite:
		if c.Database.Path == "" && c.Database.DSN == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case db.DriverPostgres:
		if c.Database.DSN == "" && c.Database.User == "" {
			return fmt.Errorf("DB_USER is required for the postgres driver")
		}
		if c.Database.DSN == "" && c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (must be sqlite or postgres)", c.Database.Driver)
	}
	if c.Security.RateLimitRPM < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must not be negative")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// DB returns the connection settings for the db package.
func (c *Config) DB() db.Config {
	level := gormlogger.Warn
	if c.IsProd() {
		level = gormlogger.Silent
	}

	dsn := c.Database.DSN
	if dsn == "" {
		switch c.Database.Driver {
		case db.DriverPostgres:
			d := c.Database
			dsn = db.PostgresDSN(d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
		default:
			dsn = c.Database.Path
		}
	}
	return db.Config{Driver: c.Database.Driver, DSN: dsn, LogLevel: level}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
