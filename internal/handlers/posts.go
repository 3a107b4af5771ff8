// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artmoa/internal/middleware"
	"artmoa/internal/models"
	"artmoa/internal/store"
	"artmoa/internal/vision"
)

// Describer is the image-analysis surface the detail view needs.
// *vision.Client satisfies it.
type Describer interface {
	Analyze(ctx context.Context, imageURL string) (*vision.Analysis, error)
}

// Curator produces per-style commentary. *curation.Engine satisfies it.
type Curator interface {
	Curate(ctx context.Context, prompt, caption, tags string) map[string]string
}

// BlobRemover maps stored file URLs back to object keys and removes the
// objects. *storage.Client satisfies it.
type BlobRemover interface {
	ExtractKey(rawURL string) (string, bool)
	Delete(ctx context.Context, key string) error
}

// Posts groups gallery and post CRUD handlers.
type Posts struct {
	postStore *store.PostStore
	describer Describer
	curator   Curator
	blobs     BlobRemover
}

// NewPosts creates a Posts handler group. describer may be nil when image
// analysis is not configured; detail views then skip caption and curation.
// blobs may be nil, in which case deleted posts leave their image objects
// in the bucket.
func NewPosts(postStore *store.PostStore, describer Describer, curator Curator, blobs BlobRemover) *Posts {
	return &Posts{
		postStore: postStore,
		describer: describer,
		curator:   curator,
		blobs:     blobs,
	}
}

// PublicGallery lists public posts oldest first, optionally filtered by a
// title search.
func (h *Posts) PublicGallery(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postStore.ListPublic(r.URL.Query().Get("search"))
	if err != nil {
		slog.Error("public gallery query failed", "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": emptyIfNil(posts)})
}

// MyGallery lists the authenticated user's posts newest first, optionally
// filtered by a title search.
func (h *Posts) MyGallery(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	posts, err := h.postStore.ListByUser(sess.UserID, r.URL.Query().Get("search"))
	if err != nil {
		slog.Error("my gallery query failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": emptyIfNil(posts)})
}

// Detail returns one post with its fresh vision caption, tags, and
// per-style curation. Analysis failures degrade to empty values so the
// post itself still renders.
func (h *Posts) Detail(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	var caption string
	var tags []string
	if h.describer != nil {
		analysis, err := h.describer.Analyze(r.Context(), post.Image)
		if err != nil {
			slog.Warn("image analysis failed", "post_id", post.ID, "error", err)
		} else {
			caption = analysis.Caption
			tags = analysis.Tags
		}
	}

	joined := strings.Join(tags, ", ")
	var curations map[string]string
	if h.curator != nil {
		curations = h.curator.Curate(r.Context(), post.Title, caption, joined)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post":     post,
		"caption":  caption,
		"tags":     joined,
		"curation": curations,
	})
}

type createPostRequest struct {
	Title           string  `json:"title"`
	Image           string  `json:"image"`
	GeneratedPrompt *string `json:"generated_prompt"`
	IsPublic        bool    `json:"is_public"`
}

// Create publishes a generated image as a post.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Image == "" {
		respondError(w, http.StatusBadRequest, "제목과 이미지를 입력해주세요.")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	post, err := h.postStore.Create(&models.Post{
		UserID:          sess.UserID,
		Title:           req.Title,
		Image:           req.Image,
		GeneratedPrompt: req.GeneratedPrompt,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		slog.Error("post create failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	post.AuthorNickname = sess.Nickname

	respondJSON(w, http.StatusCreated, post)
}

type updatePostRequest struct {
	Title    string `json:"title"`
	IsPublic bool   `json:"is_public"`
}

// Update edits a post's title and visibility. The image is immutable.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if !post.OwnedBy(sess.UserID) {
		respondError(w, http.StatusForbidden, "권한이 없습니다.")
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "제목을 입력해주세요.")
		return
	}

	if err := h.postStore.Update(post.ID, req.Title, req.IsPublic); err != nil {
		slog.Error("post update failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}

	updated, err := h.postStore.FindByID(post.ID)
	if err != nil || updated == nil {
		slog.Error("post reload failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a post and its comments.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if !post.OwnedBy(sess.UserID) {
		respondError(w, http.StatusForbidden, "권한이 없습니다.")
		return
	}

	if err := h.postStore.Delete(post.ID); err != nil {
		slog.Error("post delete failed", "post_id", post.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}

	// Best effort: remove the image object once the row is gone. URLs that
	// do not belong to our bucket (externally hosted images) are left alone.
	if h.blobs != nil {
		if key, ok := h.blobs.ExtractKey(post.Image); ok {
			if err := h.blobs.Delete(r.Context(), key); err != nil {
				slog.Warn("image object cleanup failed", "post_id", post.ID, "key", key, "error", err)
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "게시물이 삭제되었습니다."})
}

// loadPost resolves the {id} URL parameter to a post, writing the error
// response itself when the id is malformed or the post does not exist.
func (h *Posts) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return nil, false
	}

	post, err := h.postStore.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "post_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return nil, false
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "게시물을 찾을 수 없습니다.")
		return nil, false
	}
	return post, true
}

func emptyIfNil(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
