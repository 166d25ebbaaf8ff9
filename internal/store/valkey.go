// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pagecraft/internal/models"
)

const (
	// configKeyPrefix is the Valkey key prefix for config records.
	configKeyPrefix = "config:"

	// DefaultConfigTTL is how long an untouched record is kept.
	DefaultConfigTTL = 30 * 24 * time.Hour
)

// ValkeyStore keeps records as JSON strings in Valkey. Every save refreshes
// the record's TTL.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyStore returns a ValkeyStore. A zero ttl uses DefaultConfigTTL.
func NewValkeyStore(client *redis.Client, ttl time.Duration) *ValkeyStore {
	if ttl == 0 {
		ttl = DefaultConfigTTL
	}
	return &ValkeyStore{client: client, ttl: ttl}
}

// Load reads the record for key.
func (s *ValkeyStore) Load(ctx context.Context, key string) (models.TemplateConfig, bool, error) {
	raw, err := s.client.Get(ctx, configKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.TemplateConfig{}, false, nil
	}
	if err != nil {
		return models.TemplateConfig{}, false, fmt.Errorf("valkey get config: %w", err)
	}

	var cfg models.TemplateConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return models.TemplateConfig{}, false, fmt.Errorf("decode config: %w", err)
	}
	return cfg.Normalize(), true, nil
}

// Save writes the record for key.
func (s *ValkeyStore) Save(ctx context.Context, key string, cfg models.TemplateConfig) error {
	raw, err := json.Marshal(cfg.Normalize())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := s.client.Set(ctx, configKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("valkey set config: %w", err)
	}
	return nil
}
