// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"log/slog"
	"sync"

	"pagecraft/internal/models"
)

// Binding is the configuration record of one session. Get and Update never
// fail: backend errors are logged and the last known value is served.
//
// While the record cannot be read, updates are applied in memory only and
// replayed onto the stored record once a load succeeds, so a read failure
// never overwrites a record it could not see.
type Binding struct {
	mu      sync.Mutex
	store   ConfigStore
	key     string
	loaded  bool
	value   models.TemplateConfig
	pending []func(models.TemplateConfig) models.TemplateConfig
}

// Bind returns the Binding for key in s.
func Bind(s ConfigStore, key string) *Binding {
	return &Binding{store: s, key: key, value: models.EmptyConfig()}
}

// Get returns the persisted config, or the empty default when none exists.
func (b *Binding) Get(ctx context.Context) models.TemplateConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg, _ := b.current(ctx)
	return cfg.Normalize()
}

// Update applies fn to the current value and persists the result. fn runs
// under the binding's lock, so a read-modify-write is never interleaved
// with another update on the same binding.
func (b *Binding) Update(ctx context.Context, fn func(models.TemplateConfig) models.TemplateConfig) models.TemplateConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok := b.current(ctx)
	next := fn(cur.Normalize()).Normalize()
	b.value = next

	if !ok {
		b.pending = append(b.pending, fn)
		slog.Warn("config save deferred until the record can be read", "session", b.key, "pending", len(b.pending))
		return next.Normalize()
	}

	b.save(ctx, next)
	return next.Normalize()
}

// current returns the value and whether it reflects the stored record. The
// record is loaded on first use and after a failed load. Caller holds b.mu.
func (b *Binding) current(ctx context.Context) (models.TemplateConfig, bool) {
	if b.loaded {
		return b.value, true
	}

	cfg, ok, err := b.store.Load(ctx, b.key)
	switch {
	case err != nil:
		slog.Error("config load failed", "session", b.key, "error", err)
		return b.value, false
	case !ok:
		cfg = models.EmptyConfig()
	}

	cfg = cfg.Normalize()
	if len(b.pending) > 0 {
		for _, fn := range b.pending {
			cfg = fn(cfg).Normalize()
		}
		b.pending = nil
		b.save(ctx, cfg)
	}

	b.value = cfg
	b.loaded = true
	return b.value, true
}

func (b *Binding) save(ctx context.Context, cfg models.TemplateConfig) {
	if err := b.store.Save(ctx, b.key, cfg); err != nil {
		slog.Error("config save failed", "session", b.key, "error", err)
	}
}
