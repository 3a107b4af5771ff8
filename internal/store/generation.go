// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"artmoa/internal/models"
)

// GenerationStore records successful AI image generations. The table is
// insert-only: rows are never updated, and deletion happens solely through
// the owning user's cascade.
type GenerationStore struct {
	db *sql.DB
}

// NewGenerationStore creates a new GenerationStore with the given database connection.
func NewGenerationStore(db *sql.DB) *GenerationStore {
	return &GenerationStore{db: db}
}

// Create inserts a generation record. Called by the pipeline only after the
// artifact has been persisted to durable storage.
func (s *GenerationStore) Create(ctx context.Context, g *models.Generation) (*models.Generation, error) {
	result := &models.Generation{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO generations (user_id, prompt, generated_prompt, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, prompt, generated_prompt, image_url, created_at
	`, g.UserID, g.Prompt, g.GeneratedPrompt, g.ImageURL).Scan(
		&result.ID, &result.UserID, &result.Prompt,
		&result.GeneratedPrompt, &result.ImageURL, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create generation: %w", err)
	}
	return result, nil
}

// ListRecentByUser returns a user's most recent generation records,
// newest first.
func (s *GenerationStore) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Generation, error) {
	if limit <= 0 {
		limit = 1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, prompt, generated_prompt, image_url, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var gens []models.Generation
	for rows.Next() {
		var g models.Generation
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Prompt, &g.GeneratedPrompt, &g.ImageURL, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}
