// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pagecraft/internal/models"
	"pagecraft/internal/synth"
)

var (
	// ErrEmptyResponse is returned by a remote tier whose provider answered
	// with nothing.
	ErrEmptyResponse = errors.New("generator: empty response")
	// ErrNoMarkup is returned when the answer contains no HTML at all,
	// typically a refusal.
	ErrNoMarkup = errors.New("generator: response contains no HTML")
)

// Tier is one strategy in the generation chain. Attempt either returns a
// document or an error; the orchestrator moves to the next tier on error.
type Tier interface {
	Name() string
	Attempt(ctx context.Context, cfg models.TemplateConfig) (string, error)
}

// TextGenerator is the remote text-generation contract. *ai.Registry
// satisfies it.
type TextGenerator interface {
	GenerateWithModel(ctx context.Context, provider, model, systemPrompt, userPrompt string) (string, error)
}

// PromptFunc renders the user prompt for a configuration.
type PromptFunc func(models.TemplateConfig) (string, error)

// RemoteTier asks a provider for a document.
type RemoteTier struct {
	Label    string // optional display name; defaults to "provider/model"
	Service  TextGenerator
	Provider string // empty selects the registry's active provider
	Model    string
	Prompt   PromptFunc
	Timeout  time.Duration // per-attempt bound; 0 means none
}

func (t RemoteTier) Name() string {
	if t.Label != "" {
		return t.Label
	}
	p := t.Provider
	if p == "" {
		p = "default"
	}
	return p + "/" + t.Model
}

// ModelName reports the model the tier requests.
func (t RemoteTier) ModelName() string { return t.Model }

func (t RemoteTier) remote() bool { return true }

// Attempt makes exactly one remote call. Timeouts, provider errors and
// unusable answers all count as failure.
func (t RemoteTier) Attempt(ctx context.Context, cfg models.TemplateConfig) (string, error) {
	if t.Service == nil {
		return "", fmt.Errorf("generator: tier %s has no text service", t.Name())
	}
	prompt := BuildPrompt
	if t.Prompt != nil {
		prompt = t.Prompt
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	userPrompt, err := prompt(cfg)
	if err != nil {
		return "", err
	}

	raw, err := t.Service.GenerateWithModel(ctx, t.Provider, t.Model, SystemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	doc := CleanDocument(raw)
	if doc == "" {
		return "", ErrEmptyResponse
	}
	if !strings.Contains(doc, "<") {
		return "", ErrNoMarkup
	}
	return doc, nil
}

// LocalTier synthesizes the document without any remote call. It never
// fails.
type LocalTier struct {
	// Delay is an optional pause before synthesis, used by demo deployments
	// to make the local path feel like a remote one. Cancelling ctx ends it
	// early.
	Delay time.Duration
}

func (LocalTier) Name() string { return "local" }

// ModelName reports the synthesizer as the "model".
func (LocalTier) ModelName() string { return "synth" }

func (t LocalTier) Attempt(ctx context.Context, cfg models.TemplateConfig) (string, error) {
	if t.Delay > 0 {
		timer := time.NewTimer(t.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	return synth.Synthesize(cfg), nil
}

// ChainConfig names the models used by DefaultChain.
type ChainConfig struct {
	PrimaryProvider   string
	PrimaryModel      string
	SecondaryProvider string
	SecondaryModel    string
	RemoteTimeout     time.Duration
	LocalDelay        time.Duration
}

// DefaultChain returns [primary remote, secondary remote, local]. The
// secondary tier uses the simplified prompt. With a nil service only the
// local tier is returned.
func DefaultChain(svc TextGenerator, cc ChainConfig) []Tier {
	local := LocalTier{Delay: cc.LocalDelay}
	if svc == nil {
		return []Tier{local}
	}
	return []Tier{
		RemoteTier{
			Label:    "primary",
			Service:  svc,
			Provider: cc.PrimaryProvider,
			Model:    cc.PrimaryModel,
			Prompt:   BuildPrompt,
			Timeout:  cc.RemoteTimeout,
		},
		RemoteTier{
			Label:    "secondary",
			Service:  svc,
			Provider: cc.SecondaryProvider,
			Model:    cc.SecondaryModel,
			Prompt:   BuildSimplePrompt,
			Timeout:  cc.RemoteTimeout,
		},
		local,
	}
}

// CleanDocument strips markdown code fences and any chatter before the
// document start, returning trimmed HTML.
func CleanDocument(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if nl := strings.Index(response, "\n"); nl != -1 {
			response = response[nl+1:]
		} else {
			response = ""
		}
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
		response = strings.TrimSpace(response)
	}

	if !strings.HasPrefix(response, "<") {
		for _, marker := range []string{"<!DOCTYPE", "<!doctype", "<html", "<HTML"} {
			if idx := strings.Index(response, marker); idx > 0 {
				response = response[idx:]
				if end := strings.LastIndex(response, "```"); end != -1 {
					response = response[:end]
				}
				break
			}
		}
	}

	return strings.TrimSpace(response)
}

func isRemote(t Tier) bool {
	r, ok := t.(interface{ remote() bool })
	return ok && r.remote()
}

func modelOf(t Tier) string {
	if m, ok := t.(interface{ ModelName() string }); ok {
		return m.ModelName()
	}
	return ""
}
