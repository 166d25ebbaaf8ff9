// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the text passes moderation
	Categories []string // flagged category names, sorted (empty when safe)
}

// Moderator checks user-supplied text for policy violations before it is
// sent to a generation endpoint.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// --- OpenAI moderation (free endpoint, via go-openai) ---

type openAIModerator struct {
	client *openai.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	cc.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	return &openAIModerator{client: openai.NewClientWithConfig(cc)}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	// Empty model selects the endpoint's current default.
	resp, err := m.client.Moderations(ctx, openai.ModerationRequest{Input: text})
	if err != nil {
		return nil, fmt.Errorf("moderation: %w", err)
	}

	if len(resp.Results) == 0 || !resp.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	// ResultCategories is a struct of bools; its JSON form gives the
	// category names.
	raw, err := json.Marshal(resp.Results[0].Categories)
	if err != nil {
		return nil, fmt.Errorf("moderation categories: %w", err)
	}
	var cats map[string]bool
	if err := json.Unmarshal(raw, &cats); err != nil {
		return nil, fmt.Errorf("moderation categories: %w", err)
	}

	return &ModerationResult{Safe: false, Categories: flaggedNames(cats)}, nil
}

// --- Mistral moderation (raw REST) ---

type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &mistralModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// mistralModerationBase turns a chat base URL ("…/v1") into the API root the
// moderation endpoint is addressed from.
func mistralModerationBase(chatBase string) string {
	return strings.TrimSuffix(strings.TrimRight(chatBase, "/"), "/v1")
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	body := mistralModRequest{
		Model: "mistral-moderation-latest",
		Input: text,
	}
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}

	var result mistralModResponse
	if err := postJSON(ctx, m.client, "mistral moderation", m.baseURL+"/v1/moderations", headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	// Mistral has no top-level flag; any true category flags the text.
	flagged := flaggedNames(result.Results[0].Categories)
	return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
}

// --- Fallback ---

// fallbackModerator asks primary first and secondary when primary errors
// (for example a project-scoped OpenAI key without moderation access).
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil {
		return res, nil
	}
	slog.Warn("primary moderator failed, trying fallback", "error", err)
	return m.secondary.CheckSafety(ctx, text)
}

// flaggedNames returns the true entries of cats in readable, sorted form:
// "hate/threatening" becomes "hate (threatening)", underscores become spaces.
func flaggedNames(cats map[string]bool) []string {
	var out []string
	for cat, isFlagged := range cats {
		if !isFlagged {
			continue
		}
		display := cat
		if strings.Contains(display, "/") {
			display = strings.Replace(display, "/", " (", 1) + ")"
		}
		display = strings.ReplaceAll(display, "_", " ")
		out = append(out, display)
	}
	sort.Strings(out)
	return out
}

type mistralModRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type mistralModResponse struct {
	Results []mistralModResult `json:"results"`
}

type mistralModResult struct {
	Categories map[string]bool `json:"categories"`
}
