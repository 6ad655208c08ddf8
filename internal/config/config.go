package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	JWT      JWTConfig      `koanf:"jwt"`
	Session  SessionConfig  `koanf:"session"`
	Auth     AuthConfig     `koanf:"auth"`
}

type AppConfig struct {
	Name string `koanf:"name"`
	Env  string `koanf:"env"`
	Port string `koanf:"port"`
}

type DatabaseConfig struct {
	URL      string `koanf:"url"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
	TimeZone string `koanf:"timezone"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

// SessionConfig selects the console session storage.
// Backend is one of memory, redis or postgres.
type SessionConfig struct {
	Backend       string `koanf:"backend"`
	Cookie        string `koanf:"cookie"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	RedisPrefix   string `koanf:"redis_prefix"`
}

// AuthConfig points the console at the authentication endpoint.
// An empty BaseURL uses the in-process auth service.
// SeedPassword is given to the per-role seed users created outside production.
type AuthConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	SeedPassword string        `koanf:"seed_password"`
}

const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		App: AppConfig{
			Name: "Retail MIS Console",
			Env:  "development",
			Port: "3000",
		},
		Database: DatabaseConfig{
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		JWT: JWTConfig{
			Secret: "your-super-secret-key-change-in-production",
			TTL:    24 * time.Hour,
		},
		Session: SessionConfig{
			Backend:     SessionBackendMemory,
			Cookie:      "mis_scope",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "mis:session",
		},
		Auth: AuthConfig{
			Timeout:      10 * time.Second,
			SeedPassword: "password123",
		},
	}
}

// envKeys maps environment variables to config paths
var envKeys = map[string]string{
	"APP_NAME":        "app.name",
	"APP_ENV":         "app.env",
	"PORT":            "app.port",
	"DATABASE_URL":    "database.url",
	"DB_HOST":         "database.host",
	"DB_PORT":         "database.port",
	"DB_USER":         "database.user",
	"DB_PASSWORD":     "database.password",
	"DB_NAME":         "database.name",
	"DB_SSLMODE":      "database.sslmode",
	"DB_TIMEZONE":     "database.timezone",
	"JWT_SECRET":      "jwt.secret",
	"JWT_TTL":         "jwt.ttl",
	"SESSION_BACKEND": "session.backend",
	"SESSION_COOKIE":  "session.cookie",
	"REDIS_ADDR":      "session.redis_addr",
	"REDIS_PASSWORD":  "session.redis_password",
	"REDIS_DB":        "session.redis_db",
	"REDIS_PREFIX":    "session.redis_prefix",
	"AUTH_BASE_URL":   "auth.base_url",
	"AUTH_TIMEOUT":    "auth.timeout",
	"SEED_PASSWORD":   "auth.seed_password",
}

// Load layers environment variables over the defaults
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok || value == "" {
				return "", nil
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis, SessionBackendPostgres:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if c.Session.Cookie == "" {
		return fmt.Errorf("session cookie name is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}
	if c.IsProduction() && c.JWT.Secret == Default().JWT.Secret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns DATABASE_URL or a DSN assembled from the DB_* settings
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}
