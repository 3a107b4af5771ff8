// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// mistralProvider implements the Provider interface using the Mistral
// chat completions API, which is OpenAI-compatible, so it embeds the
// OpenAI provider and only changes the base URL and name.
type mistralProvider struct {
	*openAIProvider
}

// newMistral creates a new Mistral provider.
func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &mistralProvider{
		openAIProvider: newOpenAI(cfg),
	}
}

func (p *mistralProvider) Name() string { return "mistral" }
