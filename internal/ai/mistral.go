// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// mistralBaseURL is Mistral's OpenAI-compatible chat endpoint root.
const mistralBaseURL = "https://api.mistral.ai/v1"

// newMistral creates a Mistral provider. Mistral speaks the OpenAI chat
// completions protocol at a different base URL.
func newMistral(cfg ProviderConfig) *chatProvider {
	return newChatProvider("mistral", mistralBaseURL, cfg)
}
