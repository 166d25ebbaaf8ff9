// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading. Values come
// from built-in defaults, then an optional YAML file, then environment
// variables. It provides a centralized Config struct used across the
// application.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "pagecraft.yml"

// envPrefix marks environment variables that override any config key:
// PAGECRAFT_STORE_DRIVER sets store_driver.
const envPrefix = "PAGECRAFT_"

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreValkey   = "valkey"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	Env  string `koanf:"env"` // "development", "production", "testing"

	// Configuration store
	StoreDriver string        `koanf:"store_driver"`
	SQLitePath  string        `koanf:"sqlite_path"`
	ConfigTTL   time.Duration `koanf:"config_ttl"` // Valkey record lifetime

	// PostgreSQL connection
	DBHost     string `koanf:"postgres_host"`
	DBPort     string `koanf:"postgres_port"`
	DBUser     string `koanf:"postgres_user"`
	DBPassword string `koanf:"postgres_password"`
	DBName     string `koanf:"postgres_db"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string `koanf:"valkey_host"`
	ValkeyPort     string `koanf:"valkey_port"`
	ValkeyPassword string `koanf:"valkey_password"`
	PageCache      bool   `koanf:"page_cache"` // cache the landing page in Valkey

	// Generation chain
	AIProvider        string        `koanf:"ai_provider"` // provider used when a tier names none
	PrimaryProvider   string        `koanf:"primary_provider"`
	PrimaryModel      string        `koanf:"primary_model"`
	SecondaryProvider string        `koanf:"secondary_provider"`
	SecondaryModel    string        `koanf:"secondary_model"`
	RemoteTimeout     time.Duration `koanf:"remote_timeout"`
	LocalDelay        time.Duration `koanf:"local_delay"`
	MaxTokens         int           `koanf:"max_tokens"`

	// Provider credentials
	OpenAIAPIKey   string `koanf:"openai_api_key"`
	OpenAIBaseURL  string `koanf:"openai_base_url"`
	OpenAIModel    string `koanf:"openai_model"`
	MistralAPIKey  string `koanf:"mistral_api_key"`
	MistralBaseURL string `koanf:"mistral_base_url"`
	MistralModel   string `koanf:"mistral_model"`
	ClaudeAPIKey   string `koanf:"claude_api_key"`
	ClaudeModel    string `koanf:"claude_model"`
	GeminiAPIKey   string `koanf:"gemini_api_key"`
	GeminiModel    string `koanf:"gemini_model"`

	// HTTP surface
	WorkspaceIdleTTL time.Duration `koanf:"workspace_idle_ttl"`
	GenerateRate     float64       `koanf:"generate_rate"` // generate requests per second per client
	GenerateBurst    int           `koanf:"generate_burst"`
	CORSOrigins      []string      `koanf:"cors_origins"`
}

// Default returns a Config with development defaults.
func Default() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: "8080",
		Env:  "development",

		StoreDriver: StoreSQLite,
		SQLitePath:  "data/pagecraft.db",
		ConfigTTL:   30 * 24 * time.Hour,

		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "pagecraft",
		DBPassword: "changeme",
		DBName:     "pagecraft",

		ValkeyHost: "localhost",
		ValkeyPort: "6379",

		AIProvider:        "openai",
		PrimaryProvider:   "openai",
		PrimaryModel:      "gpt-4o",
		SecondaryProvider: "openai",
		SecondaryModel:    "gpt-4o-mini",
		RemoteTimeout:     45 * time.Second,
		MaxTokens:         8192,

		OpenAIModel:  "gpt-4o",
		MistralModel: "mistral-large-latest",
		ClaudeModel:  "claude-sonnet-4-5-20250929",
		GeminiModel:  "gemini-2.5-flash",

		WorkspaceIdleTTL: 2 * time.Hour,
		GenerateRate:     0.2,
		GenerateBurst:    3,
	}
}

// conventionalEnv maps the unprefixed variables commonly set for the
// backing services onto config keys. PAGECRAFT_ variables still win.
var conventionalEnv = map[string]string{
	"APP_HOST":          "host",
	"APP_PORT":          "port",
	"APP_ENV":           "env",
	"POSTGRES_HOST":     "postgres_host",
	"POSTGRES_PORT":     "postgres_port",
	"POSTGRES_USER":     "postgres_user",
	"POSTGRES_PASSWORD": "postgres_password",
	"POSTGRES_DB":       "postgres_db",
	"VALKEY_HOST":       "valkey_host",
	"VALKEY_PORT":       "valkey_port",
	"VALKEY_PASSWORD":   "valkey_password",
	"OPENAI_API_KEY":    "openai_api_key",
	"MISTRAL_API_KEY":   "mistral_api_key",
	"ANTHROPIC_API_KEY": "claude_api_key",
	"GEMINI_API_KEY":    "gemini_api_key",
}

// Load reads configuration from the given YAML file (skipped when it does
// not exist), then overlays environment variables, then validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// A blank key from the callback skips the variable; empty values keep
	// the default.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return conventionalEnv[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validEnvs = map[string]bool{
	"development": true,
	"production":  true,
	"testing":     true,
}

var validStoreDrivers = map[string]bool{
	StoreMemory:   true,
	StoreSQLite:   true,
	StorePostgres: true,
	StoreValkey:   true,
}

var validProviders = map[string]bool{
	"openai":  true,
	"mistral": true,
	"claude":  true,
	"gemini":  true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid env %q: must be one of development, production, testing", c.Env)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if !validStoreDrivers[c.StoreDriver] {
		return fmt.Errorf("invalid store_driver %q: must be one of memory, sqlite, postgres, valkey", c.StoreDriver)
	}
	if c.StoreDriver == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite_path is required for the sqlite store")
	}
	if c.StoreDriver == StoreValkey && c.ConfigTTL <= 0 {
		return fmt.Errorf("config_ttl must be positive")
	}
	for _, p := range []string{c.AIProvider, c.PrimaryProvider, c.SecondaryProvider} {
		if p != "" && !validProviders[p] {
			return fmt.Errorf("invalid provider %q: must be one of openai, mistral, claude, gemini", p)
		}
	}
	if c.RemoteTimeout <= 0 {
		return fmt.Errorf("remote_timeout must be positive")
	}
	if c.LocalDelay < 0 {
		return fmt.Errorf("local_delay must be non-negative")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	if c.WorkspaceIdleTTL <= 0 {
		return fmt.Errorf("workspace_idle_ttl must be positive")
	}
	if c.GenerateRate <= 0 || c.GenerateBurst < 1 {
		return fmt.Errorf("generate_rate must be positive and generate_burst at least 1")
	}

	if c.Env == "production" && c.StoreDriver == StorePostgres && c.DBPassword == "changeme" {
		return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// UsesValkey reports whether any component needs a Valkey connection.
func (c *Config) UsesValkey() bool {
	return c.StoreDriver == StoreValkey || c.PageCache
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
