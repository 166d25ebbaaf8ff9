// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator turns a template configuration into an HTML document by
// walking an ordered chain of tiers: a primary remote model, a secondary
// remote model with a simpler prompt, and the local synthesizer. The chain
// stops at the first tier that returns a document, so with the default
// chain every generation ends in success.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pagecraft/internal/ai"
	"pagecraft/internal/models"
)

var (
	// ErrTypeRequired is returned when the configuration selects no site type.
	ErrTypeRequired = errors.New("generator: site type is required")
	// ErrInFlight is returned when a generation is already running.
	ErrInFlight = errors.New("generator: generation already in progress")
	// ErrAllTiersFailed is returned when no tier produced a document.
	ErrAllTiersFailed = errors.New("generator: every tier failed")
)

// State is the orchestrator's lifecycle state.
type State int

const (
	Idle State = iota
	Generating
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Moderator screens user-supplied text before it reaches a remote tier.
// *ai.Registry satisfies it.
type Moderator interface {
	HasModerator() bool
	CheckPrompt(ctx context.Context, text string) (*ai.ModerationResult, error)
}

// TierFailure records one failed attempt.
type TierFailure struct {
	Tier  string `json:"tier"`
	Error string `json:"error"`
}

// Result describes a finished generation.
type Result struct {
	Document  string        `json:"document"`
	Tier      string        `json:"tier"`
	Model     string        `json:"model"`
	Failures  []TierFailure `json:"failures"`
	Flagged   []string      `json:"flagged,omitempty"` // moderation categories that skipped the remote tiers
	Duration  time.Duration `json:"duration"`
	AttemptID string        `json:"attempt_id"`
}

// Orchestrator runs the tier chain and tracks generation state. It is safe
// for concurrent use; at most one generation runs at a time.
type Orchestrator struct {
	tiers     []Tier
	moderator Moderator
	onResult  func(Result)
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	last  *Result
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithModerator screens the site name before remote tiers run.
func WithModerator(m Moderator) Option {
	return func(o *Orchestrator) { o.moderator = m }
}

// WithResultHandler registers fn to receive every successful result.
func WithResultHandler(fn func(Result)) Option {
	return func(o *Orchestrator) { o.onResult = fn }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an orchestrator over tiers, tried in order.
func New(tiers []Tier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		tiers:  tiers,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// InFlight reports whether a generation is running.
func (o *Orchestrator) InFlight() bool {
	return o.State() == Generating
}

// Last returns the most recent successful result.
func (o *Orchestrator) Last() (Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return Result{}, false
	}
	return *o.last, true
}

// Generate runs the chain for cfg. It refuses configs without a site type
// (ErrTypeRequired) and concurrent calls (ErrInFlight); neither changes the
// state. Once started, the attempt is detached from ctx cancellation and
// always runs to completion.
func (o *Orchestrator) Generate(ctx context.Context, cfg models.TemplateConfig) (Result, error) {
	if !cfg.CanGenerate() {
		return Result{}, ErrTypeRequired
	}

	o.mu.Lock()
	if o.state == Generating {
		o.mu.Unlock()
		return Result{}, ErrInFlight
	}
	o.state = Generating
	o.mu.Unlock()

	res, err := o.run(context.WithoutCancel(ctx), cfg)

	o.mu.Lock()
	if err != nil {
		o.state = Failed
	} else {
		o.state = Succeeded
		o.last = &res
	}
	onResult := o.onResult
	o.mu.Unlock()

	if err == nil && onResult != nil {
		onResult(res)
	}
	return res, err
}

func (o *Orchestrator) run(ctx context.Context, cfg models.TemplateConfig) (Result, error) {
	start := time.Now()
	res := Result{AttemptID: uuid.NewString()}
	log := o.logger.With("attempt", res.AttemptID, "type", string(cfg.Type))

	skipRemote := false
	if flagged := o.screen(ctx, cfg, log); len(flagged) > 0 {
		skipRemote = true
		res.Flagged = flagged
	}

	for _, tier := range o.tiers {
		if skipRemote && isRemote(tier) {
			continue
		}

		doc, err := attempt(ctx, tier, cfg)
		if err != nil {
			log.Warn("generation tier failed", "tier", tier.Name(), "model", modelOf(tier), "error", err)
			res.Failures = append(res.Failures, TierFailure{Tier: tier.Name(), Error: err.Error()})
			continue
		}

		res.Document = doc
		res.Tier = tier.Name()
		res.Model = modelOf(tier)
		res.Duration = time.Since(start)
		log.Info("template generated",
			"tier", res.Tier,
			"model", res.Model,
			"failures", len(res.Failures),
			"duration", res.Duration,
		)
		return res, nil
	}

	res.Duration = time.Since(start)
	log.Error("template generation failed", "failures", len(res.Failures))
	return res, fmt.Errorf("%w (%d attempts)", ErrAllTiersFailed, len(res.Failures))
}

// screen returns the flagged categories for the site name, or nil when the
// name is clean, empty or moderation is unavailable. Moderator errors fail
// open.
func (o *Orchestrator) screen(ctx context.Context, cfg models.TemplateConfig, log *slog.Logger) []string {
	name := strings.TrimSpace(cfg.Name)
	if o.moderator == nil || name == "" || !o.moderator.HasModerator() {
		return nil
	}

	result, err := o.moderator.CheckPrompt(ctx, name)
	if err != nil {
		log.Warn("moderation check failed, allowing prompt", "error", err)
		return nil
	}
	if result == nil || result.Safe {
		return nil
	}

	log.Warn("site name flagged by moderation, using local tier only",
		"categories", strings.Join(result.Categories, ", "))
	if len(result.Categories) == 0 {
		return []string{"unspecified"}
	}
	return result.Categories
}

// attempt runs one tier, converting a panic into an error so a broken
// provider cannot leave the orchestrator stuck in Generating.
func attempt(ctx context.Context, t Tier, cfg models.TemplateConfig) (doc string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tier %s panicked: %v", t.Name(), r)
		}
	}()
	return t.Attempt(ctx, cfg)
}
