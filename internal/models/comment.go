// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader remark attached to a post. Only the author may edit
// or delete it.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// AuthorNickname is joined from the users table for display.
	AuthorNickname string `json:"author,omitempty"`
}

// AuthoredBy returns true if the comment was written by the given user.
func (c *Comment) AuthoredBy(userID uuid.UUID) bool {
	return c.AuthorID == userID
}
