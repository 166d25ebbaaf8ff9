// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workspace keeps the per-visitor state behind the generator panel:
// the persisted configuration binding, the generation orchestrator and the
// edit session. Workspaces are created on first use and evicted after a
// period of inactivity; the configuration record outlives them in the
// store.
package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pagecraft/internal/editor"
	"pagecraft/internal/generator"
	"pagecraft/internal/store"
)

// DefaultIdleTTL is used when NewManager is given a non-positive TTL.
const DefaultIdleTTL = 2 * time.Hour

// Workspace is the state of one session.
type Workspace struct {
	ID           string
	Config       *store.Binding
	Orchestrator *generator.Orchestrator
	Editor       *editor.Session

	mu       sync.Mutex
	lastUsed time.Time
}

// Generate runs the orchestrator over the current configuration. On
// success the editor already holds the new document when Generate returns.
func (w *Workspace) Generate(ctx context.Context) (generator.Result, error) {
	return w.Orchestrator.Generate(ctx, w.Config.Get(ctx))
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastUsed = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastUsed
}

// Manager owns every live workspace. It is safe for concurrent use.
type Manager struct {
	store   store.ConfigStore
	tiers   []generator.Tier
	opts    []generator.Option
	idleTTL time.Duration

	mu     sync.Mutex
	spaces map[string]*Workspace

	stopCh chan struct{}
	once   sync.Once
	now    func() time.Time
}

// NewManager creates a manager whose workspaces persist configuration in s
// and generate through tiers. opts are applied to every orchestrator; the
// result handler that feeds the editor is always added last. A janitor
// goroutine evicts workspaces idle for longer than idleTTL until Stop.
func NewManager(s store.ConfigStore, tiers []generator.Tier, idleTTL time.Duration, opts ...generator.Option) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	m := &Manager{
		store:   s,
		tiers:   tiers,
		opts:    opts,
		idleTTL: idleTTL,
		spaces:  make(map[string]*Workspace),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	interval := idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.sweep(); n > 0 {
					slog.Debug("idle workspaces evicted", "count", n)
				}
			case <-m.stopCh:
				return
			}
		}
	}()

	return m
}

// Stop terminates the janitor. Safe to call twice.
func (m *Manager) Stop() {
	m.once.Do(func() { close(m.stopCh) })
}

// Get returns the workspace for sessionID, creating it on first use, and
// marks it as used.
func (m *Manager) Get(sessionID string) *Workspace {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.spaces[sessionID]
	if !ok {
		w = m.newWorkspace(sessionID)
		m.spaces[sessionID] = w
	}
	w.touch(now)
	return w
}

// Lookup returns the workspace for sessionID without creating one.
func (m *Manager) Lookup(sessionID string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.spaces[sessionID]
	if ok {
		w.touch(m.now())
	}
	return w, ok
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spaces)
}

func (m *Manager) newWorkspace(id string) *Workspace {
	ed := editor.New()

	opts := make([]generator.Option, 0, len(m.opts)+1)
	opts = append(opts, m.opts...)
	opts = append(opts, generator.WithResultHandler(func(r generator.Result) {
		ed.SetDocument(r.Document)
	}))

	return &Workspace{
		ID:           id,
		Config:       store.Bind(m.store, id),
		Orchestrator: generator.New(m.tiers, opts...),
		Editor:       ed,
	}
}

// sweep evicts idle workspaces and returns how many were removed. A
// workspace with a generation in flight is kept.
func (m *Manager) sweep() int {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, w := range m.spaces {
		if w.Orchestrator.InFlight() {
			continue
		}
		if w.idleSince().Before(cutoff) {
			delete(m.spaces, id)
			evicted++
		}
	}
	return evicted
}
