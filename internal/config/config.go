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

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Log       LogConfig
	Tracing   TracingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Host            string
	Port            int
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// StoreConfig selects the backing store. The memory driver simulates a remote
// API by waiting a fixed latency on every call.
type StoreConfig struct {
	Driver       string
	ListLatency  time.Duration
	GetLatency   time.Duration
	WriteLatency time.Duration
	LoginLatency time.Duration
	// Seed for the sample-data generator; 0 picks one from the clock.
	RandomSeed uint64
}

type DatabaseConfig struct {
	Host               string
	Port               int
	Name               string
	User               string
	Password           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	SampleRate   float64
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         time.Duration
}

type RateLimitConfig struct {
	// Global Rate limit per IP
	RequestsPerSecond float64
	BurstSize         int
	// Auth endpoints have stricter limits
	AuthRequestsPerMinute int
}

type AuditConfig struct {
	BufferSize int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        env("APP_NAME", "clinicdesk", str),
			Environment: env("APP_ENV", "development", str),
			Version:     env("APP_VERSION", "0.0.0", str),
		},
		Server: ServerConfig{
			Host:            env("SERVER_HOST", "0.0.0.0", str),
			Port:            env("SERVER_PORT", 8080, strconv.Atoi),
			GinMode:         env("GIN_MODE", "release", str),
			ReadTimeout:     env("SERVER_READ_TIMEOUT", 15*time.Second, time.ParseDuration),
			WriteTimeout:    env("SERVER_WRITE_TIMEOUT", 15*time.Second, time.ParseDuration),
			IdleTimeout:     env("SERVER_IDLE_TIMEOUT", 60*time.Second, time.ParseDuration),
			ShutdownTimeout: env("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second, time.ParseDuration),
		},
		Store: StoreConfig{
			Driver:       env("STORE_DRIVER", DriverMemory, str),
			ListLatency:  env("STORE_LIST_LATENCY", 500*time.Millisecond, time.ParseDuration),
			GetLatency:   env("STORE_GET_LATENCY", 300*time.Millisecond, time.ParseDuration),
			WriteLatency: env("STORE_WRITE_LATENCY", 300*time.Millisecond, time.ParseDuration),
			LoginLatency: env("STORE_LOGIN_LATENCY", 800*time.Millisecond, time.ParseDuration),
			RandomSeed:   env("SEED_RANDOM", uint64(0), uint64s),
		},
		Database: DatabaseConfig{
			Host:               env("DB_HOST", "localhost", str),
			Port:               env("DB_PORT", 5432, strconv.Atoi),
			Name:               env("DB_NAME", "clinicdesk", str),
			User:               env("DB_USER", "clinicdesk", str),
			Password:           env("DB_PASSWORD", "", str),
			SSLMode:            env("DB_SSLMODE", "require", str),
			MaxOpenConns:       env("DB_MAX_OPEN_CONNS", 25, strconv.Atoi),
			MaxIdleConns:       env("DB_MAX_IDLE_CONNS", 10, strconv.Atoi),
			ConnMaxLifetime:    env("DB_CONN_MAX_LIFETIME", 30*time.Minute, time.ParseDuration),
			ConnMaxIdleTime:    env("DB_CONN_MAX_IDLE_TIME", 5*time.Minute, time.ParseDuration),
			SlowQueryThreshold: env("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond, time.ParseDuration),
		},
		JWT: JWTConfig{
			Secret:          env("JWT_SECRET", "", str),
			AccessTokenTTL:  env("JWT_ACCESS_TTL", 15*time.Minute, time.ParseDuration),
			RefreshTokenTTL: env("JWT_REFRESH_TTL", 7*24*time.Hour, time.ParseDuration),
			Issuer:          env("JWT_ISSUER", "clinicdesk", str),
		},
		Log: LogConfig{
			Level:      env("LOG_LEVEL", "info", str),
			Format:     env("LOG_FORMAT", "json", str),
			OutputPath: env("LOG_OUTPUT", "stdout", str),
		},
		Tracing: TracingConfig{
			Enabled:      env("TRACING_ENABLED", false, strconv.ParseBool),
			ServiceName:  env("TRACING_SERVICE_NAME", "clinicdesk", str),
			OTLPEndpoint: env("OTLP_ENDPOINT", "otel-collector:4318", str),
			SampleRate:   env("TRACING_SAMPLE_RATE", float64(0.1), float64s),
		},
		CORS: CORSConfig{
			AllowedOrigins: env("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}, list),
			AllowedMethods: env("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}, list),
			AllowedHeaders: env("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type", "X-Request-ID"}, list),
			MaxAge:         env("CORS_MAX_AGE", 12*time.Hour, time.ParseDuration),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:     env("RATE_LIMIT_RPS", float64(100), float64s),
			BurstSize:             env("RATE_LIMIT_BURST", 200, strconv.Atoi),
			AuthRequestsPerMinute: env("RATE_LIMIT_AUTH_RPM", 10, strconv.Atoi),
		},
		Audit: AuditConfig{
			BufferSize: env("AUDIT_BUFFER_SIZE", 10_000, strconv.Atoi),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces production security requirements.
func validate(cfg *Config) error {
	var errs []string

	if cfg.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	} else if len(cfg.JWT.Secret) < 32 && cfg.App.Environment == "production" {
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.Database.Password == "" && cfg.App.Environment != "development" {
			errs = append(errs, "DB_PASSWORD is required in non-development environments")
		}
		if cfg.Database.SSLMode == "disable" && cfg.App.Environment == "production" {
			errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER must be %q or %q, got %q", DriverMemory, DriverPostgres, cfg.Store.Driver))
	}

	if cfg.Audit.BufferSize <= 0 {
		errs = append(errs, "AUDIT_BUFFER_SIZE must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// env returns the parsed value of key, or fallback when the variable is
// unset or does not parse.
func env[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func str(s string) (string, error) { return s, nil }

func uint64s(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

func float64s(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// list splits a comma-separated value, dropping blanks. An empty result
// counts as a parse failure so the fallback applies.
func list(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}
