package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Supported database dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logger   LoggerConfig   `toml:"logger"`
	Database DatabaseConfig `toml:"database"`
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string        `toml:"port"`
	AllowedOrigins []string      `toml:"allowed_origins"`
	ReadTimeout    time.Duration `toml:"read_timeout"`
	WriteTimeout   time.Duration `toml:"write_timeout"`
	IdleTimeout    time.Duration `toml:"idle_timeout"`
	MetricsEnabled bool          `toml:"metrics_enabled"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Dialect         string        `toml:"dialect"`
	URL             string        `toml:"url"` // postgres connection URL, overrides the discrete fields
	Host            string        `toml:"host"`
	Port            string        `toml:"port"`
	User            string        `toml:"user"`
	Password        string        `toml:"password"`
	DBName          string        `toml:"name"`
	SSLMode         string        `toml:"sslmode"`
	Path            string        `toml:"path"` // sqlite database file
	BusyTimeout     time.Duration `toml:"busy_timeout"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
}

// AppConfig holds recharge-specific configuration
type AppConfig struct {
	RechargeTimeout    time.Duration `toml:"recharge_timeout"`
	RetryBackoff       time.Duration `toml:"retry_backoff"`
	RechargeMaxRetries int           `toml:"recharge_max_retries"`
}

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
	Enabled   bool   `toml:"enabled"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level      string `toml:"level"` // debug, info, warn, error
	File       string `toml:"file"`  // empty logs to stdout
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Default returns the configuration used when neither a file nor the
// environment overrides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MetricsEnabled: true,
		},
		Database: DatabaseConfig{
			Dialect:         DialectPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			DBName:          "messledger",
			SSLMode:         "disable",
			Path:            "messledger.db",
			BusyTimeout:     5 * time.Second,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		App: AppConfig{
			RechargeTimeout:    10 * time.Second,
			RechargeMaxRetries: 3,
			RetryBackoff:       50 * time.Millisecond,
		},
		Auth: AuthConfig{
			Enabled: true,
			Issuer:  "messledger",
		},
		Logger: LoggerConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load loads configuration from CONFIG_FILE (if set) and environment variables
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile layers an optional TOML file over the defaults, then the
// environment over the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Server.MetricsEnabled = getEnvAsBool("METRICS_ENABLED", c.Server.MetricsEnabled)

	c.Database.Dialect = getEnv("DB_DIALECT", c.Database.Dialect)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.BusyTimeout = getEnvAsDuration("DB_BUSY_TIMEOUT", c.Database.BusyTimeout)
	c.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)

	c.App.RechargeTimeout = getEnvAsDuration("RECHARGE_TIMEOUT", c.App.RechargeTimeout)
	c.App.RechargeMaxRetries = getEnvAsInt("RECHARGE_MAX_RETRIES", c.App.RechargeMaxRetries)
	c.App.RetryBackoff = getEnvAsDuration("RECHARGE_RETRY_BACKOFF", c.App.RetryBackoff)

	c.Auth.Enabled = getEnvAsBool("AUTH_ENABLED", c.Auth.Enabled)
	c.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.Issuer = getEnv("AUTH_ISSUER", c.Auth.Issuer)

	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Logger.File = getEnv("LOG_FILE", c.Logger.File)
	c.Logger.MaxSizeMB = getEnvAsInt("LOG_MAX_SIZE_MB", c.Logger.MaxSizeMB)
	c.Logger.MaxBackups = getEnvAsInt("LOG_MAX_BACKUPS", c.Logger.MaxBackups)
	c.Logger.MaxAgeDays = getEnvAsInt("LOG_MAX_AGE_DAYS", c.Logger.MaxAgeDays)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	switch c.Database.Dialect {
	case DialectPostgres:
		if c.Database.URL != "" {
			break
		}
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	case DialectSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path cannot be empty")
		}
	default:
		return fmt.Errorf("invalid database dialect: %s (must be postgres or sqlite)", c.Database.Dialect)
	}

	if c.App.RechargeTimeout <= 0 {
		return fmt.Errorf("recharge timeout must be positive")
	}
	if c.App.RechargeMaxRetries < 0 {
		return fmt.Errorf("recharge max retries cannot be negative")
	}
	if c.App.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff cannot be negative")
	}

	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth is enabled but AUTH_JWT_SECRET is empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the driver-specific connection string
func (c *DatabaseConfig) DSN() string {
	if c.Dialect == DialectSQLite {
		q := url.Values{}
		q.Add("_pragma", "foreign_keys(1)")
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", c.BusyTimeout.Milliseconds()))
		q.Add("_pragma", "journal_mode(WAL)")
		q.Set("_txlock", "immediate")
		q.Set("_time_format", "sqlite")
		return "file:" + c.Path + "?" + q.Encode()
	}

	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
