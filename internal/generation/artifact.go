// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader is the object-storage surface the artifact store needs.
// *storage.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// ArtifactStore downloads a provider-hosted image from its short-lived URL
// and re-stores it under a durable, collision-resistant key.
type ArtifactStore struct {
	uploader Uploader
	client   *http.Client
	now      func() time.Time
}

// NewArtifactStore creates an artifact store backed by an object storage
// uploader.
func NewArtifactStore(uploader Uploader) *ArtifactStore {
	return &ArtifactStore{
		uploader: uploader,
		client:   &http.Client{Timeout: 60 * time.Second},
		now:      time.Now,
	}
}

// Persist fetches the image at sourceURL and uploads it under a fresh key
// derived from the owner, the current UTC time, a random suffix, and a
// sanitized prompt prefix. Returns the durable public URL.
func (s *ArtifactStore) Persist(ctx context.Context, sourceURL, promptText string, ownerID uuid.UUID) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build download request: %w", ErrArtifactPersist, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download: %w", ErrArtifactPersist, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: download returned status %d", ErrArtifactPersist, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read image body: %w", ErrArtifactPersist, err)
	}

	key := artifactKey(ownerID, promptText, s.now().UTC())
	if err := s.uploader.Upload(ctx, key, "image/png", bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArtifactPersist, err)
	}

	return s.uploader.FileURL(key), nil
}

// artifactKey builds the object key:
// user_{owner}_{yyyymmdd_hhmmss}_{8-hex}_{sanitized prompt prefix}.png
func artifactKey(ownerID uuid.UUID, promptText string, at time.Time) string {
	timestamp := at.Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("user_%s_%s_%s_%s.png", ownerID, timestamp, suffix, sanitizePrompt(promptText))
}

// sanitizePrompt keeps the first 20 characters of the prompt, drops
// characters that are unsafe in object keys and filenames, trims edge
// whitespace, and replaces interior spaces with underscores.
func sanitizePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > 20 {
		runes = runes[:20]
	}

	var b strings.Builder
	for _, r := range runes {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			continue
		}
		b.WriteRune(r)
	}

	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}
