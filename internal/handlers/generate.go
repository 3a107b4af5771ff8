// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"artmoa/internal/generation"
	"artmoa/internal/middleware"
	"artmoa/internal/models"
	"artmoa/internal/store"
)

// Runner is the pipeline surface the handler needs. *generation.Pipeline
// satisfies it.
type Runner interface {
	Run(ctx context.Context, rawPrompt string, ownerID uuid.UUID) (*generation.Result, error)
}

// Generate handles AI image generation requests.
type Generate struct {
	pipeline Runner
	records  *store.GenerationStore
}

// NewGenerate creates a Generate handler.
func NewGenerate(pipeline Runner, records *store.GenerationStore) *Generate {
	return &Generate{pipeline: pipeline, records: records}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Create runs the generation pipeline for the authenticated user. Stage
// failures map to fixed Korean messages; the technical cause stays in the
// server log only.
func (g *Generate) Create(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		respondError(w, http.StatusBadRequest, "프롬프트를 입력해주세요.")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	result, err := g.pipeline.Run(r.Context(), prompt, sess.UserID)
	if err != nil {
		slog.Error("generation pipeline failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, stageMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Recent returns the authenticated user's latest generation records,
// newest first. Defaults to 5 records, capped at 50.
func (g *Generate) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	sess := middleware.SessionFromCtx(r.Context())
	gens, err := g.records.ListRecentByUser(r.Context(), sess.UserID, limit)
	if err != nil {
		slog.Error("generation list failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	if gens == nil {
		gens = []models.Generation{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"generations": gens})
}

// stageMessage maps a pipeline error to its user-facing Korean message.
func stageMessage(err error) string {
	switch {
	case errors.Is(err, generation.ErrPromptGeneration):
		return "프롬프트 생성에 실패했습니다."
	case errors.Is(err, generation.ErrImageGeneration):
		return "이미지 생성에 실패했습니다."
	case errors.Is(err, generation.ErrArtifactPersist), errors.Is(err, generation.ErrRecordSave):
		return "이미지 저장에 실패했습니다."
	default:
		return "이미지 생성 중 오류가 발생했습니다."
	}
}
