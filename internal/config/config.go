package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverPQ       = "pq"
	DriverSQLite   = "sqlite"

	devJWTSecret = "habitquest-dev-secret"
)

// Config holds all HabitQuest configuration.
type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Insight  InsightConfig  `yaml:"insight"`
	Timezone string         `yaml:"timezone"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver is one of memory, redis, postgres (pgx), pq (lib/pq) or sqlite.
	Driver     string `yaml:"driver"`
	Table      string `yaml:"table"`
	SQLitePath string `yaml:"sqlite_path"`
	// CacheTTL applies when Redis fronts a SQL driver.
	CacheTTL string `yaml:"cache_ttl"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
	TokenTTL  string `yaml:"token_ttl"`
}

type InsightConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     "10s",
			WriteTimeout:    "60s",
			ShutdownTimeout: "5s",
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			Table:      "kv_store",
			SQLitePath: "habitquest.db",
			CacheTTL:   "30m",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "habitquest",
			Name:    "habitquest",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Host:   "localhost",
			Port:   "6379",
			Prefix: "habitquest:",
		},
		Auth: AuthConfig{
			Issuer:   "habitquest",
			TokenTTL: "72h",
		},
		Insight: InsightConfig{
			Model:   "gemini-2.5-flash",
			Timeout: "30s",
		},
		Timezone: "UTC",
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads defaults, then the optional YAML file at path, then a .env file in
// the working directory, then environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.Env == EnvDevelopment && cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Env, "APP_ENV")
	setString(&c.Server.Port, "PORT")

	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.SQLitePath, "SQLITE_PATH")

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Redis.Enabled = b
		}
	}

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Insight.APIKey, "GEMINI_API_KEY")
	setString(&c.Insight.Model, "GEMINI_MODEL")
	setString(&c.Timezone, "TIMEZONE")
	setString(&c.Log.Level, "LOG_LEVEL")
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres, DriverPQ, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q (want memory, redis, postgres, pq or sqlite)", c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" && c.Env != EnvDevelopment {
		return errors.New("JWT secret not configured (set JWT_SECRET)")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	durations := map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"storage.cache_ttl":       c.Storage.CacheTTL,
		"auth.token_ttl":          c.Auth.TokenTTL,
		"insight.timeout":         c.Insight.Timeout,
	}
	for name, v := range durations {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}

	return nil
}

// SQLDriver maps the storage driver to a database/sql driver name and DSN. ok is
// false for non-SQL drivers.
func (c *Config) SQLDriver() (driver, dsn string, ok bool) {
	switch c.Storage.Driver {
	case DriverPostgres:
		return "pgx", c.postgresDSN(), true
	case DriverPQ:
		return "postgres", c.postgresDSN(), true
	case DriverSQLite:
		return "sqlite", c.Storage.SQLitePath, true
	default:
		return "", "", false
	}
}

func (c *Config) postgresDSN() string {
	d := c.Database
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Duration parses v, falling back when it is empty or malformed. Validate
// reports malformed values up front.
func Duration(v string, fallback time.Duration) time.Duration {
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
