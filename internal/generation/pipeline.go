// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generation implements the image generation pipeline: a user's
// free-form description is rewritten into an English DALL-E prompt, sent to
// the image model, and the resulting short-lived image is re-stored under a
// durable URL before a generation record is written. Stages run strictly in
// order and the first failure aborts the run; nothing downstream is called.
package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"artmoa/internal/models"
)

// ImageSynthesizer is the image-model surface the pipeline needs.
// *ai.ImageClient satisfies it.
type ImageSynthesizer interface {
	SynthesizeURL(ctx context.Context, prompt string) (string, error)
}

// Persister stores a provider-hosted image durably. *ArtifactStore
// satisfies it.
type Persister interface {
	Persist(ctx context.Context, sourceURL, promptText string, ownerID uuid.UUID) (string, error)
}

// Recorder writes generation records. *store.GenerationStore satisfies it.
type Recorder interface {
	Create(ctx context.Context, g *models.Generation) (*models.Generation, error)
}

// PromptRewriter converts user input into a model-ready prompt.
// *Rewriter satisfies it.
type PromptRewriter interface {
	Rewrite(ctx context.Context, userInput string) (string, error)
}

// Result is what a successful pipeline run hands back to the caller.
type Result struct {
	ImageURL        string `json:"image_url"`
	GeneratedPrompt string `json:"generated_prompt"`
}

// Pipeline chains the generation stages. The provider selection happened
// at startup; no per-request fallback or retry is attempted.
type Pipeline struct {
	rewriter  PromptRewriter
	images    ImageSynthesizer
	artifacts Persister
	records   Recorder
	logger    *slog.Logger
}

// NewPipeline assembles the pipeline from its stages.
func NewPipeline(rewriter PromptRewriter, images ImageSynthesizer, artifacts Persister, records Recorder, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		rewriter:  rewriter,
		images:    images,
		artifacts: artifacts,
		records:   records,
		logger:    logger,
	}
}

// Run executes rewrite, synthesis, persistence, and record insert in order.
// Each stage is attempted at most once; a failure returns the stage's
// sentinel error without touching later stages.
func (p *Pipeline) Run(ctx context.Context, rawPrompt string, ownerID uuid.UUID) (*Result, error) {
	rewritten, err := p.rewriter.Rewrite(ctx, rawPrompt)
	if err != nil {
		p.logger.Error("prompt rewrite failed", "user_id", ownerID, "error", err)
		return nil, err
	}
	p.logger.Info("prompt rewritten", "user_id", ownerID, "prompt_len", len(rewritten))

	transientURL, err := p.images.SynthesizeURL(ctx, rewritten)
	if err != nil {
		p.logger.Error("image synthesis failed", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrImageGeneration, err)
	}

	durableURL, err := p.artifacts.Persist(ctx, transientURL, rewritten, ownerID)
	if err != nil {
		p.logger.Error("artifact persistence failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	if _, err := p.records.Create(ctx, &models.Generation{
		UserID:          ownerID,
		Prompt:          rawPrompt,
		GeneratedPrompt: &rewritten,
		ImageURL:        durableURL,
	}); err != nil {
		p.logger.Error("generation record save failed", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRecordSave, err)
	}

	p.logger.Info("image generated", "user_id", ownerID, "image_url", durableURL)

	return &Result{
		ImageURL:        durableURL,
		GeneratedPrompt: rewritten,
	}, nil
}
