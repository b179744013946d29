package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the vocab capture service.
// Environment variables are parsed from the VOCAB_BACKEND_ prefix.
type Config struct {
	// Build target selects the deployment shape: local | cloud-dev | cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"cloud-dev"`

	// Derived or override driver
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`

	// Identity provider (GoTrue-compatible). DevMode replaces it with a
	// static-token authorizer for local runs.
	AuthURL     string `envconfig:"AUTH_URL" default:""`
	AuthAnonKey string `envconfig:"AUTH_ANON_KEY" default:""`
	DevMode     bool   `envconfig:"DEV_MODE" default:"false"`

	// Enrichment providers. DeepL is only used when a key is present;
	// MyMemory is the keyless fallback. URLs are overridable for tests.
	SourceLang           string `envconfig:"SOURCE_LANG" default:"en"`
	TargetLang           string `envconfig:"TARGET_LANG" default:"de"`
	DeepLKey             string `envconfig:"DEEPL_KEY" default:""`
	DeepLURL             string `envconfig:"DEEPL_URL" default:"https://api-free.deepl.com"`
	MyMemoryURL          string `envconfig:"MYMEMORY_URL" default:"https://api.mymemory.translated.net"`
	DatamuseURL          string `envconfig:"DATAMUSE_URL" default:"https://api.datamuse.com"`
	MaxSynonyms          int    `envconfig:"MAX_SYNONYMS" default:"8"`
	EnrichTimeoutSeconds int    `envconfig:"ENRICH_TIMEOUT_SECONDS" default:"8"`

	// Health monitoring
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		c.SQLitePath = "./data/vocab.db"
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Variables are prefixed with VOCAB_BACKEND_, e.g. VOCAB_BACKEND_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("VOCAB_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Bool("dev_mode", cfg.DevMode).
		Bool("deepl_key_present", cfg.DeepLKey != "").
		Str("source_lang", cfg.SourceLang).
		Str("target_lang", cfg.TargetLang).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config suitable for unit tests: sqlite storage,
// dev-mode auth, provider URLs left for the test to point at stubs.
func NewForTesting() *Config {
	cfg := &Config{
		BuildTarget: "local",
		DBDriver:    "auto",
		Environment: EnvTesting,
		HTTPPort:    8080,
		DevMode:     true,
		SourceLang:  "en",
		TargetLang:  "de",
		MaxSynonyms: 8,

		EnrichTimeoutSeconds:      2,
		HealthProbeTimeoutSeconds: 1,
		HealthIntervalSeconds:     1,
	}
	cfg.SQLitePath = ":memory:"
	_ = cfg.ResolveDefaults()
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
