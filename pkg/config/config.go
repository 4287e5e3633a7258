// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Config holds the settings shared by the binaries.
type Config struct {
	HTTPAddr    string
	TLSCert     string
	TLSKey      string
	LogLevel    string
	CORSOrigins []string

	Backend       string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	StoreTimeout  time.Duration
	StoreMaxTries uint

	RedisAddr  string
	SessionTTL time.Duration

	KafkaBroker string
	KafkaTopic  string

	OTELHost        string
	OTELProbability float64
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		HTTPAddr:        ":8443",
		CORSOrigins:     []string{"https://localhost:8443"},
		LogLevel:        "info",
		Backend:         BackendMemory,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "RestaurantDB",
		StoreTimeout:    5 * time.Second,
		StoreMaxTries:   3,
		RedisAddr:       "localhost:6379",
		SessionTTL:      time.Hour,
		KafkaTopic:      "restaurant-events",
		OTELProbability: 1.0,
	}
}

// Load overlays environment variables on the defaults.
func Load() (Config, error) {
	cfg := Default()

	str(&cfg.HTTPAddr, "HTTP_ADDR")
	str(&cfg.TLSCert, "TLS_CERT")
	str(&cfg.TLSKey, "TLS_KEY")
	str(&cfg.LogLevel, "LOG_LEVEL")
	str(&cfg.Backend, "STORE_BACKEND")
	str(&cfg.MongoURI, "MONGO_URI")
	str(&cfg.MongoDatabase, "MONGO_DATABASE")
	str(&cfg.DatabaseURL, "DATABASE_URL")
	str(&cfg.RedisAddr, "REDIS_ADDR")
	str(&cfg.KafkaBroker, "KAFKA_BROKER")
	str(&cfg.KafkaTopic, "KAFKA_TOPIC")
	str(&cfg.OTELHost, "OTEL_HOST")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = list(v)
	}

	if err := duration(&cfg.StoreTimeout, "STORE_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if err := duration(&cfg.SessionTTL, "SESSION_TTL"); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("STORE_MAX_TRIES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return Config{}, fmt.Errorf("STORE_MAX_TRIES: must be a positive integer, got %q", v)
		}
		cfg.StoreMaxTries = uint(n)
	}
	if v := os.Getenv("OTEL_PROBABILITY"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 || p > 1 {
			return Config{}, fmt.Errorf("OTEL_PROBABILITY: must be between 0 and 1, got %q", v)
		}
		cfg.OTELProbability = p
	}

	return cfg, cfg.Validate()
}

// Validate checks that the selected backend is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendMongo:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("STORE_BACKEND: unknown backend %q", c.Backend)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}
	return nil
}

func str(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// list splits a comma separated value, dropping empty entries.
func list(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func duration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
