// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artmoa/internal/middleware"
	"artmoa/internal/models"
	"artmoa/internal/store"
)

// Comments groups the comment JSON API handlers.
type Comments struct {
	commentStore *store.CommentStore
	postStore    *store.PostStore
}

// NewComments creates a Comments handler group.
func NewComments(commentStore *store.CommentStore, postStore *store.PostStore) *Comments {
	return &Comments{
		commentStore: commentStore,
		postStore:    postStore,
	}
}

// List returns all comments on a post, oldest first. Listing is public;
// only writing requires authentication.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	post, err := h.postStore.FindByID(postID)
	if err != nil {
		slog.Error("comment post lookup failed", "post_id", postID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "게시물을 찾을 수 없습니다.")
		return
	}

	comments, err := h.commentStore.ListByPost(postID)
	if err != nil {
		slog.Error("comment list failed", "post_id", postID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

type commentRequest struct {
	Message string `json:"message"`
}

// Create adds a comment to a post.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	post, err := h.postStore.FindByID(postID)
	if err != nil {
		slog.Error("comment post lookup failed", "post_id", postID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "게시물을 찾을 수 없습니다.")
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "댓글 내용을 입력해주세요.")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	comment, err := h.commentStore.Create(postID, sess.UserID, req.Message)
	if err != nil {
		slog.Error("comment create failed", "post_id", postID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	comment.AuthorNickname = sess.Nickname

	respondJSON(w, http.StatusCreated, comment)
}

// Update edits a comment's message. Only the author may edit.
func (h *Comments) Update(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.loadOwnComment(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "댓글 내용을 입력해주세요.")
		return
	}

	updated, err := h.commentStore.Update(comment.ID, req.Message)
	if err != nil {
		slog.Error("comment update failed", "comment_id", comment.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}
	updated.AuthorNickname = comment.AuthorNickname

	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a comment. Only the author may delete.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.loadOwnComment(w, r)
	if !ok {
		return
	}

	if err := h.commentStore.Delete(comment.ID); err != nil {
		slog.Error("comment delete failed", "comment_id", comment.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "댓글이 삭제되었습니다."})
}

// loadOwnComment resolves {id} to a comment and enforces authorship,
// writing the error response itself on failure.
func (h *Comments) loadOwnComment(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return nil, false
	}

	comment, err := h.commentStore.FindByID(id)
	if err != nil {
		slog.Error("comment lookup failed", "comment_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "잠시 후 다시 시도해주세요.")
		return nil, false
	}
	if comment == nil {
		respondError(w, http.StatusNotFound, "댓글을 찾을 수 없습니다.")
		return nil, false
	}

	sess := middleware.SessionFromCtx(r.Context())
	if !comment.AuthoredBy(sess.UserID) {
		respondError(w, http.StatusForbidden, "권한이 없습니다.")
		return nil, false
	}
	return comment, true
}
