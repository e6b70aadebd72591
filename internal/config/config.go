package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process.
// Values come from the environment, optionally pre-seeded from a .env file.
// No business logic should depend on raw environment variables.
type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
}

type AppConfig struct {
	Env             string
	Port            int
	LogLevel        string
	CORSAllowOrigin string
}

// StoreBackend selects where call reports and appointments live.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StorePostgres StoreBackend = "postgres"
	StoreRedis    StoreBackend = "redis"
)

type StoreConfig struct {
	Backend StoreBackend
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	KeyPrefix string
}

// AuthConfig guards the dashboard read endpoints. Empty JWTSecret disables it.
type AuthConfig struct {
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Load reads envFile (if it exists) into the environment and builds a validated Config.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	c := Config{}
	var parseErrs []error

	c.App.Env = envOr("APP_ENV", "local")
	c.App.Port, parseErrs = intOr(parseErrs, "APP_PORT", 3000)
	c.App.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	c.App.CORSAllowOrigin = envOr("CORS_ALLOW_ORIGIN", "*")

	c.Store.Backend = StoreBackend(strings.ToLower(envOr("STORE_BACKEND", string(StoreMemory))))

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	c.DB.Port, parseErrs = intOr(parseErrs, "DB_PORT", 5432)
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	c.Redis.Port, parseErrs = intOr(parseErrs, "REDIS_PORT", 6379)
	c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	c.Redis.KeyPrefix = envOr("REDIS_KEY_PREFIX", "voice-reports")

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	c.Auth.AccessTokenTTL, parseErrs = durationOr(parseErrs, "JWT_ACCESS_TTL")
	c.Auth.RefreshTokenTTL, parseErrs = durationOr(parseErrs, "JWT_REFRESH_TTL")

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the config and fills defaults that depend on other fields.
func (c *Config) Validate() error {
	var errs []error

	if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StorePostgres:
		if c.DB.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required for the postgres store"))
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
		}
		if c.DB.User == "" {
			errs = append(errs, errors.New("DB_USER is required for the postgres store"))
		}
		if c.DB.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required for the postgres store"))
		}
		if c.DB.SSLMode == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("DB_SSLMODE is required in production"))
			} else {
				c.DB.SSLMode = "disable"
			}
		}
		if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
			errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
		}
	case StoreRedis:
		if c.Redis.Host == "" {
			errs = append(errs, errors.New("REDIS_HOST is required for the redis store"))
		}
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of memory, postgres, redis, got %q", c.Store.Backend))
	}

	if c.AuthEnabled() {
		if c.IsProduction() && c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.AccessTokenTTL <= 0 {
			c.Auth.AccessTokenTTL = 15 * time.Minute
		}
		if c.Auth.RefreshTokenTTL <= 0 {
			c.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
		}
		if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
			errs = append(errs, errors.New("JWT_REFRESH_TTL must be greater than JWT_ACCESS_TTL"))
		}
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// AuthEnabled reports whether dashboard reads require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intOr(errs []error, key string, def int) (int, []error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, errs
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, append(errs, fmt.Errorf("%s must be an integer, got %q", key, v))
	}
	return n, errs
}

func durationOr(errs []error, key string) (time.Duration, []error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, errs
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, append(errs, fmt.Errorf("%s must be a duration, got %q", key, v))
	}
	return d, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
