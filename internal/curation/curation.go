// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package curation produces Korean art commentary for a post from its
// prompt, vision caption, and tags. Each enabled style is one independent
// LLM call; a style that fails gets an inline error string instead of
// aborting the others, so Curate itself never returns an error.
package curation

import (
	"context"
	"fmt"
	"log/slog"
)

// TextGenerator is the chat-provider surface the engine needs.
// *ai.Registry satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const systemTemplate = `You are an art curation expert. Provide a very detailed and professional analysis of the given work.
%s The analysis should be written in a specific and persuasive manner,
and should clearly reveal the characteristics and value of the work from a professional perspective.
Please write a curation in Korean based on the following information.`

// Engine generates per-style curations through a chat provider.
type Engine struct {
	llm    TextGenerator
	styles []Style
	logger *slog.Logger
}

// NewEngine creates a curation engine running the enabled catalogue styles.
func NewEngine(llm TextGenerator, logger *slog.Logger) *Engine {
	return &Engine{llm: llm, styles: EnabledStyles(), logger: logger}
}

// Curate runs every engine style against the post's prompt, caption, and
// tags, and returns exactly one entry per style. Failures are folded into
// the result as error strings.
func (e *Engine) Curate(ctx context.Context, prompt, caption, tags string) map[string]string {
	combined := fmt.Sprintf("프롬프트: %s\n이미지 설명: %s\n태그: %s", prompt, caption, tags)

	curations := make(map[string]string)
	for _, style := range e.styles {
		system := fmt.Sprintf(systemTemplate, style.Instruction)

		text, err := e.llm.Generate(ctx, system, combined)
		if err != nil {
			e.logger.Warn("curation style failed", "style", style.Name, "error", err)
			curations[style.Name] = fmt.Sprintf("Error generating %s curation: %s", style.Name, err)
			continue
		}
		curations[style.Name] = text
	}

	return curations
}
