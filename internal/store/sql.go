// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pagecraft/internal/database"
	"pagecraft/internal/models"
)

// SQLStore keeps records in the template_configs table. It works with
// both the PostgreSQL and SQLite schemas created by database.Migrate.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore returns a SQLStore for a connection opened with driver
// (database.DriverPostgres or database.DriverSQLite).
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Load reads the record for key.
func (s *SQLStore) Load(ctx context.Context, key string) (models.TemplateConfig, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT config FROM template_configs WHERE session_key = ?`), key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TemplateConfig{}, false, nil
	}
	if err != nil {
		return models.TemplateConfig{}, false, fmt.Errorf("load config: %w", err)
	}

	var cfg models.TemplateConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return models.TemplateConfig{}, false, fmt.Errorf("decode config: %w", err)
	}
	return cfg.Normalize(), true, nil
}

// Save upserts the record for key.
func (s *SQLStore) Save(ctx context.Context, key string, cfg models.TemplateConfig) error {
	raw, err := json.Marshal(cfg.Normalize())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO template_configs (session_key, config, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (session_key)
		DO UPDATE SET config = EXCLUDED.config, updated_at = EXCLUDED.updated_at`),
		key, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Prune deletes records not updated since before and returns how many
// were removed.
func (s *SQLStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM template_configs WHERE updated_at < ?`), before.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("prune configs: %w", err)
	}
	return res.RowsAffected()
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != database.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
