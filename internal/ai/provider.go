// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for text generation across
// multiple LLM providers (OpenAI, Mistral, Claude, Gemini). Each provider
// implements Provider; the Registry holds the configured ones, routes
// (provider, model, prompt) calls to them and owns the optional prompt
// moderator.
package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Provider defines the interface that all AI providers must implement.
type Provider interface {
	// Generate sends a prompt using the provider's default model.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateWithModel sends a prompt using model, or the default model
	// when model is empty. One call is one attempt; there are no retries.
	GenerateWithModel(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int           // response cap; 0 uses the provider default
	Timeout   time.Duration // HTTP client timeout; 0 uses 60s
}

func (c ProviderConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return c.Timeout
}

// Registry manages the configured providers. One of them is the active
// provider used when a call names none. All methods are safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
	moderator Moderator // nil when no moderation API is configured
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are skipped.
// A Moderator is configured automatically: OpenAI's free moderation API is
// preferred and Mistral's endpoint is the fallback.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "gemini":
			r.providers[name] = newGemini(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		case "mistral":
			r.providers[name] = newMistral(cfg)
		}
	}

	openaiCfg, hasOpenAI := configs["openai"]
	hasOpenAI = hasOpenAI && openaiCfg.APIKey != ""
	mistralCfg, hasMistral := configs["mistral"]
	hasMistral = hasMistral && mistralCfg.APIKey != ""

	switch {
	case hasOpenAI && hasMistral:
		r.moderator = newFallbackModerator(
			newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL),
			newMistralModerator(mistralCfg.APIKey, mistralModerationBase(mistralCfg.BaseURL)),
		)
	case hasOpenAI:
		r.moderator = newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL)
	case hasMistral:
		r.moderator = newMistralModerator(mistralCfg.APIKey, mistralModerationBase(mistralCfg.BaseURL))
	}

	return r
}

// Generate calls the active provider with its default model.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}

// GenerateWithModel calls the named provider (the active one when provider
// is empty) with the given model.
func (r *Registry) GenerateWithModel(ctx context.Context, provider, model, systemPrompt, userPrompt string) (string, error) {
	var (
		p   Provider
		err error
	)
	if provider == "" {
		p, err = r.Active()
	} else {
		p, err = r.lookup(provider)
	}
	if err != nil {
		return "", err
	}
	return p.GenerateWithModel(ctx, model, systemPrompt, userPrompt)
}

func (r *Registry) lookup(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", name)
	}
	return p, nil
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	name := r.active
	r.mu.RUnlock()
	return r.lookup(name)
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the sorted names of all configured providers.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// register adds or replaces a provider in the registry.
func (r *Registry) register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}

// SetModerator replaces the prompt moderator. A nil moderator disables
// moderation.
func (r *Registry) SetModerator(m Moderator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moderator = m
}

// HasModerator reports whether prompts are checked before generation.
func (r *Registry) HasModerator() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.moderator != nil
}

// CheckPrompt runs text through the moderation API. Without a moderator the
// text is reported safe; providers still apply their own filters.
func (r *Registry) CheckPrompt(ctx context.Context, text string) (*ModerationResult, error) {
	r.mu.RLock()
	m := r.moderator
	r.mu.RUnlock()

	if m == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return m.CheckSafety(ctx, text)
}
