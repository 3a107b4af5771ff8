// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published gallery entry. Image holds either a directly uploaded
// URL or the durable artifact URL produced by the generation pipeline;
// GeneratedPrompt is set alongside it at creation time. Neither field is
// ever mutated after the post is created — edits touch title and visibility
// only.
type Post struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Image           string    `json:"image"`
	GeneratedPrompt *string   `json:"generated_prompt,omitempty"`
	IsPublic        bool      `json:"is_public"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// AuthorNickname is joined from the users table for display; it is not
	// a column of the posts table.
	AuthorNickname string `json:"author_nickname,omitempty"`
}

// OwnedBy returns true if the post belongs to the given user.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
