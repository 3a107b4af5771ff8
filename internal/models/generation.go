// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Generation records one successful AI image-creation event. Rows are
// written only after the generated image has been persisted to durable
// storage, are never updated afterwards, and disappear only through the
// owning user's cascade delete.
type Generation struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Prompt          string    `json:"prompt"`
	GeneratedPrompt *string   `json:"generated_prompt,omitempty"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}
