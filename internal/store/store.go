// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists one TemplateConfig per visitor session. Backends
// implement ConfigStore; Binding layers the get/update contract over a
// single key.
package store

import (
	"context"
	"sync"

	"pagecraft/internal/models"
)

// ConfigStore loads and saves configuration records by key.
type ConfigStore interface {
	// Load returns the stored config and true, or false when the key has
	// no record.
	Load(ctx context.Context, key string) (models.TemplateConfig, bool, error)
	Save(ctx context.Context, key string, cfg models.TemplateConfig) error
}

// MemoryStore keeps records in process memory. Records are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.TemplateConfig
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.TemplateConfig)}
}

// Load returns a copy of the record for key.
func (s *MemoryStore) Load(_ context.Context, key string) (models.TemplateConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.records[key]
	if !ok {
		return models.TemplateConfig{}, false, nil
	}
	return cfg.Normalize(), true, nil
}

// Save stores a copy of cfg under key.
func (s *MemoryStore) Save(_ context.Context, key string, cfg models.TemplateConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = cfg.Normalize()
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
