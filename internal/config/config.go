// Package config loads and validates application configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults
//  2. an optional .env file in the working directory
//  3. an optional YAML file named by CONFIG_FILE
//  4. environment variables
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server and worker.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `koanf:"port" validate:"required,numeric"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `koanf:"database_url"`

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFile, when set, adds a rotating JSON file sink next to stdout.
	LogFile string `koanf:"log_file"`

	// CORSOrigins is a comma-separated list of allowed cross-origin request
	// origins. Use Origins for the parsed list.
	CORSOrigins string `koanf:"cors_origins"`

	// JWTSecret is the HMAC key used to verify bearer tokens. Required.
	JWTSecret string `koanf:"jwt_secret"`

	// RedisURL enables cross-process trip change fan-out. When empty the
	// live feed only sees changes made by this process.
	RedisURL string `koanf:"redis_url" validate:"omitempty,url"`

	// Timezone is the IANA zone used for the day-span rule. Defaults to "Local".
	Timezone string `koanf:"timezone"`

	// S3 bucket for trip media. Media uploads are disabled when empty.
	S3Bucket   string `koanf:"s3_bucket"`
	S3Region   string `koanf:"s3_region"`
	S3Endpoint string `koanf:"s3_endpoint" validate:"omitempty,url"`

	// Static S3 credentials (e.g. MinIO). The AWS default chain is used when unset.
	S3AccessKeyID     string `koanf:"s3_access_key_id"`
	S3SecretAccessKey string `koanf:"s3_secret_access_key"`

	// AutoStopInterval is how often the worker stops expired live trips.
	AutoStopInterval time.Duration `koanf:"autostop_interval" validate:"gt=0"`

	// CheckSlugRPS is the per-IP request rate allowed on /check-slug.
	CheckSlugRPS float64 `koanf:"check_slug_rps" validate:"gt=0"`
}

// envKeys maps environment variables to config keys.
var envKeys = map[string]string{
	"PORT":                 "port",
	"DATABASE_URL":         "database_url",
	"LOG_LEVEL":            "log_level",
	"LOG_FILE":             "log_file",
	"CORS_ORIGINS":         "cors_origins",
	"JWT_SECRET":           "jwt_secret",
	"REDIS_URL":            "redis_url",
	"TIMEZONE":             "timezone",
	"S3_BUCKET":            "s3_bucket",
	"S3_REGION":            "s3_region",
	"S3_ENDPOINT":          "s3_endpoint",
	"S3_ACCESS_KEY_ID":     "s3_access_key_id",
	"S3_SECRET_ACCESS_KEY": "s3_secret_access_key",
	"AUTOSTOP_INTERVAL":    "autostop_interval",
	"CHECK_SLUG_RPS":       "check_slug_rps",
}

var validate = validator.New()

func defaults() Config {
	return Config{
		Port:             "8080",
		LogLevel:         "info",
		CORSOrigins:      "http://localhost:5173",
		Timezone:         "Local",
		S3Region:         "us-east-1",
		AutoStopInterval: 5 * time.Minute,
		CheckSlugRPS:     5,
	}
}

// Load builds a Config from the layers described in the package doc.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Optional; a missing .env is the normal case outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they fall back to the lower layers.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		name, ok := envKeys[key]
		if !ok || value == "" {
			return "", nil
		}
		return name, value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("config: TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Origins returns the parsed CORS origin list.
func (c Config) Origins() []string {
	return splitCSV(c.CORSOrigins)
}

// Location resolves Timezone. "Local" and "" mean the process zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
