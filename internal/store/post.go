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

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `
	p.id, p.user_id, p.title, p.image, p.generated_prompt, p.is_public,
	p.created_at, p.updated_at, u.nickname`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Image, &p.GeneratedPrompt, &p.IsPublic,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorNickname,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID.
// Image and generated_prompt are written here and never again.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	result := &models.Post{AuthorNickname: p.AuthorNickname}
	err := s.db.QueryRow(`
		INSERT INTO posts (user_id, title, image, generated_prompt, is_public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, image, generated_prompt, is_public, created_at, updated_at
	`, p.UserID, p.Title, p.Image, p.GeneratedPrompt, p.IsPublic).Scan(
		&result.ID, &result.UserID, &result.Title, &result.Image,
		&result.GeneratedPrompt, &result.IsPublic, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// FindByID retrieves a post with its author's nickname. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRow(`
		SELECT`+postColumns+`
		FROM posts p JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ListPublic returns public posts for the shared gallery, oldest first.
// A non-empty search narrows results by case-insensitive title match.
func (s *PostStore) ListPublic(search string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT`+postColumns+`
		FROM posts p JOIN users u ON u.id = p.user_id
		WHERE p.is_public = TRUE AND ($1 = '' OR p.title ILIKE '%' || $1 || '%')
		ORDER BY p.created_at ASC
	`, search)
	if err != nil {
		return nil, fmt.Errorf("list public posts: %w", err)
	}
	return collectPosts(rows)
}

// ListByUser returns all posts owned by a user, newest first, optionally
// filtered by a case-insensitive title match.
func (s *PostStore) ListByUser(userID uuid.UUID, search string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT`+postColumns+`
		FROM posts p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND ($2 = '' OR p.title ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC
	`, userID, search)
	if err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}
	return collectPosts(rows)
}

// Update modifies a post's title and visibility. The image and generated
// prompt are immutable after creation.
func (s *PostStore) Update(id uuid.UUID, title string, isPublic bool) error {
	_, err := s.db.Exec(`
		UPDATE posts SET title = $1, is_public = $2, updated_at = NOW() WHERE id = $3
	`, title, isPublic, id)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post. Comments cascade.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}
