package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TokenCarrier selects how issued tokens travel back to the client and
// where incoming requests are expected to carry them.
type TokenCarrier string

const (
	CarrierHeader TokenCarrier = "header"
	CarrierCookie TokenCarrier = "cookie"
)

// AuthConfig defines authentication parameters. JWTSecret has no
// default: a process without a signing key must not start.
type AuthConfig struct {
	JWTSecret          string
	TokenTTLSeconds    int
	BcryptCost         int
	Carrier            TokenCarrier
	RevocationBackend  string // "memory" or "redis"
	RevocationSweepSec int    // 0 disables the background sweep
}

// OAuthConfig holds the external identity-provider client settings.
type OAuthConfig struct {
	ClientID         string
	ClientSecret     string
	AuthURL          string
	TokenURL         string
	UserInfoURL      string
	CallbackURL      string
	SuccessRedirects string // downstream app base for the post-login redirect
}

// Load reads configuration from environment variables, applying defaults
// where possible. The JWT signing key is the one value with no fallback.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	carrier := TokenCarrier(getEnv("AUTH_TOKEN_CARRIER", string(CarrierCookie)))
	if carrier != CarrierHeader && carrier != CarrierCookie {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_CARRIER: %q", carrier)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "streaming-auth-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:          secret,
			TokenTTLSeconds:    getEnvAsInt("AUTH_TOKEN_TTL_SECONDS", 3600),
			BcryptCost:         getEnvAsInt("AUTH_BCRYPT_COST", 12),
			Carrier:            carrier,
			RevocationBackend:  getEnv("AUTH_REVOCATION_BACKEND", "memory"),
			RevocationSweepSec: getEnvAsInt("AUTH_REVOCATION_SWEEP_SECONDS", 60),
		},
		OAuth: OAuthConfig{
			ClientID:         os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret:     os.Getenv("OAUTH_CLIENT_SECRET"),
			AuthURL:          getEnv("OAUTH_AUTH_URL", "https://accounts.google.com/o/oauth2/auth"),
			TokenURL:         getEnv("OAUTH_TOKEN_URL", "https://oauth2.googleapis.com/token"),
			UserInfoURL:      getEnv("OAUTH_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo"),
			CallbackURL:      getEnv("OAUTH_CALLBACK_URL", "http://localhost:8080/api/v1/oauth/callback"),
			SuccessRedirects: getEnv("OAUTH_SUCCESS_REDIRECT_BASE", "http://localhost:3000/auth"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the lifetime applied to every issued token.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(a.TokenTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
