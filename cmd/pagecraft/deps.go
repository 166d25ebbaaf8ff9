// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"pagecraft/internal/ai"
	"pagecraft/internal/cache"
	"pagecraft/internal/config"
	"pagecraft/internal/database"
	"pagecraft/internal/generator"
	"pagecraft/internal/store"
)

// backends holds the connections opened for a command. Close releases
// whichever were opened.
type backends struct {
	db     *sql.DB
	driver string // database driver when db is set
	valkey *redis.Client
}

func (b *backends) Close() {
	if b.db != nil {
		b.db.Close()
	}
	if b.valkey != nil {
		b.valkey.Close()
	}
}

// connect opens the services cfg needs: the SQL database for the sqlite and
// postgres stores (migrated to the latest schema) and Valkey for the valkey
// store or the page cache.
func connect(cfg *config.Config) (*backends, error) {
	b := &backends{}

	switch cfg.StoreDriver {
	case config.StoreSQLite:
		b.driver = database.DriverSQLite
		db, err := database.Connect(database.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.db = db
	case config.StorePostgres:
		b.driver = database.DriverPostgres
		db, err := database.Connect(database.DriverPostgres, cfg.DSN())
		if err != nil {
			return nil, err
		}
		b.db = db
	}

	if b.db != nil {
		if err := database.Migrate(b.db, b.driver); err != nil {
			b.Close()
			return nil, err
		}
	}

	if cfg.UsesValkey() {
		client, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.valkey = client
	}

	return b, nil
}

// configStore returns the configuration store selected by cfg.
func (b *backends) configStore(cfg *config.Config) (store.ConfigStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		slog.Warn("memory config store: configurations are lost on restart")
		return store.NewMemoryStore(), nil
	case config.StoreSQLite, config.StorePostgres:
		return store.NewSQLStore(b.db, b.driver), nil
	case config.StoreValkey:
		return store.NewValkeyStore(b.valkey, cfg.ConfigTTL), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// pageCache returns the landing page cache, or nil when disabled.
func (b *backends) pageCache(cfg *config.Config) *cache.PageCache {
	if !cfg.PageCache || b.valkey == nil {
		return nil
	}
	return cache.NewPageCache(b.valkey, cache.DefaultPageTTL)
}

// newRegistry initialises every provider that has an API key.
func newRegistry(cfg *config.Config) *ai.Registry {
	pc := func(key, model, baseURL string) ai.ProviderConfig {
		return ai.ProviderConfig{
			APIKey:    key,
			Model:     model,
			BaseURL:   baseURL,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.RemoteTimeout,
		}
	}

	reg := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  pc(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
		"mistral": pc(cfg.MistralAPIKey, cfg.MistralModel, cfg.MistralBaseURL),
		"claude":  pc(cfg.ClaudeAPIKey, cfg.ClaudeModel, ""),
		"gemini":  pc(cfg.GeminiAPIKey, cfg.GeminiModel, ""),
	})

	if _, err := reg.Active(); err != nil && len(reg.Available()) > 0 {
		fallback := reg.Available()[0]
		if err := reg.SetActive(fallback); err != nil {
			slog.Error("activate ai provider", "provider", fallback, "error", err)
		} else {
			slog.Warn("configured ai provider unavailable", "configured", cfg.AIProvider, "using", fallback)
		}
	}

	slog.Info("ai providers initialized",
		"active", reg.ActiveName(),
		"available", reg.Available(),
		"moderation", reg.HasModerator(),
	)
	return reg
}

// newChain builds the generation tiers. Without any configured provider
// the chain is local only.
func newChain(cfg *config.Config, reg *ai.Registry) []generator.Tier {
	cc := generator.ChainConfig{
		PrimaryProvider:   tierProvider(reg, "primary", cfg.PrimaryProvider),
		PrimaryModel:      cfg.PrimaryModel,
		SecondaryProvider: tierProvider(reg, "secondary", cfg.SecondaryProvider),
		SecondaryModel:    cfg.SecondaryModel,
		RemoteTimeout:     cfg.RemoteTimeout,
		LocalDelay:        cfg.LocalDelay,
	}
	if len(reg.Available()) == 0 {
		slog.Warn("no ai provider configured, templates are synthesized locally")
		return generator.DefaultChain(nil, cc)
	}
	return generator.DefaultChain(reg, cc)
}

// tierProvider returns name when the registry has it, otherwise "" so the
// tier uses the active provider.
func tierProvider(reg *ai.Registry, tier, name string) string {
	if name == "" || reg.HasProvider(name) {
		return name
	}
	slog.Warn("tier provider not configured, using the active provider",
		"tier", tier, "provider", name, "active", reg.ActiveName())
	return ""
}
