package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvProduction disables development fallbacks such as the default JWT secret.
	EnvProduction = "production"

	devJWTSecret = "change-me"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv          string
	ServerPort      string
	MySQLDSN        string
	DBLogLevel      string
	ResetDB         bool
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	TokenTTL        time.Duration
	ProfileCacheTTL time.Duration
	CORSOrigin      string
	SwaggerHost     string
}

// Load builds Config from the environment, reading a local .env first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		ServerPort:      getEnv("PORT", "5000"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local"),
		DBLogLevel:      getEnv("DB_LOG_LEVEL", "warn"),
		ResetDB:         getEnvBool("RESET_DB", false),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", time.Hour),
		ProfileCacheTTL: getEnvDuration("PROFILE_CACHE_TTL", 5*time.Minute),
		CORSOrigin:      os.Getenv("CORS_ORIGIN"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

// Validate checks settings that have no safe default in production.
func (c *Config) Validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.AppEnv == EnvProduction && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", EnvProduction)
	}
	return nil
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
