// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"artmoa/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByPost returns all comments on a post with author nicknames, oldest first.
func (s *CommentStore) ListByPost(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.post_id, c.author_id, c.message, c.created_at, c.updated_at, u.nickname
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Message,
			&c.CreatedAt, &c.UpdatedAt, &c.AuthorNickname,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create inserts a new comment and returns it with the generated ID.
func (s *CommentStore) Create(postID, authorID uuid.UUID, message string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, author_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, author_id, message, created_at, updated_at
	`, postID, authorID, message).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Message, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT c.id, c.post_id, c.author_id, c.message, c.created_at, c.updated_at, u.nickname
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Message,
		&c.CreatedAt, &c.UpdatedAt, &c.AuthorNickname,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Update replaces a comment's message.
func (s *CommentStore) Update(id uuid.UUID, message string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		UPDATE comments SET message = $1, updated_at = NOW() WHERE id = $2
		RETURNING id, post_id, author_id, message, created_at, updated_at
	`, message, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Message, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment by ID.
func (s *CommentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
