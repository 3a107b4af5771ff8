package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artmoa/internal/models"
	"artmoa/internal/store"
	"artmoa/internal/vision"
)

type fakeDescriber struct {
	analysis *vision.Analysis
	err      error
}

func (f *fakeDescriber) Analyze(ctx context.Context, imageURL string) (*vision.Analysis, error) {
	return f.analysis, f.err
}

type fakeCurator struct {
	out map[string]string
}

func (f *fakeCurator) Curate(ctx context.Context, prompt, caption, tags string) map[string]string {
	return f.out
}

func TestPostLifecycle(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)
	other := testUser(t, db)

	posts := NewPosts(store.NewPostStore(db),
		&fakeDescriber{analysis: &vision.Analysis{Caption: "a cat in space", Tags: []string{"cat", "space"}}},
		&fakeCurator{out: map[string]string{"Emotional": "감성 큐레이션"}}, nil)
	comments := NewComments(store.NewCommentStore(db), store.NewPostStore(db))
	router := postsRouter(posts, comments)

	// Create a private post.
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/posts",
		strings.NewReader(`{"title": "우주 고양이", "image": "https://img.artmoa.example/user_x.png", "is_public": false}`)), owner)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", w.Code, w.Body)
	}
	var created models.Post
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	t.Cleanup(func() { store.NewPostStore(db).Delete(created.ID) })

	// Private posts stay out of the public gallery.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts?search="+created.Title[:3], nil))
	if w.Code != http.StatusOK {
		t.Fatalf("public gallery: got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), created.ID.String()) {
		t.Error("private post must not appear in the public gallery")
	}

	// But they do appear in the owner's gallery.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodGet, "/api/posts/mine", nil), owner))
	if !strings.Contains(w.Body.String(), created.ID.String()) {
		t.Error("own gallery should include the private post")
	}

	// Detail view includes caption, tags, and curation.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/"+created.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("detail: got %d", w.Code)
	}
	var detail struct {
		Post     models.Post       `json:"post"`
		Caption  string            `json:"caption"`
		Tags     string            `json:"tags"`
		Curation map[string]string `json:"curation"`
	}
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Caption != "a cat in space" || detail.Tags != "cat, space" {
		t.Errorf("analysis: caption=%q tags=%q", detail.Caption, detail.Tags)
	}
	if detail.Curation["Emotional"] != "감성 큐레이션" {
		t.Errorf("curation: got %v", detail.Curation)
	}

	// Non-owner cannot edit.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPatch, "/api/posts/"+created.ID.String(),
		strings.NewReader(`{"title": "탈취", "is_public": true}`)), other))
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign edit: got %d", w.Code)
	}

	// Owner publishes it.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPatch, "/api/posts/"+created.ID.String(),
		strings.NewReader(`{"title": "우주 고양이", "is_public": true}`)), owner))
	if w.Code != http.StatusOK {
		t.Fatalf("edit: got %d, body %s", w.Code, w.Body)
	}
	var updated models.Post
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if !updated.IsPublic {
		t.Error("post should now be public")
	}
	if updated.Image != created.Image {
		t.Error("image must be immutable across edits")
	}

	// Non-owner cannot delete; owner can.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.ID.String(), nil), other))
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: got %d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.ID.String(), nil), owner))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}
}

type fakeBlobRemover struct {
	prefix  string
	deleted []string
}

func (f *fakeBlobRemover) ExtractKey(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, f.prefix) {
		return "", false
	}
	return rawURL[len(f.prefix):], true
}

func (f *fakeBlobRemover) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestPostDeleteRemovesImageObject(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)

	postStore := store.NewPostStore(db)
	blobs := &fakeBlobRemover{prefix: "https://img.artmoa.example/"}
	router := postsRouter(
		NewPosts(postStore, nil, nil, blobs),
		NewComments(store.NewCommentStore(db), postStore))

	p, err := postStore.Create(&models.Post{
		UserID:   owner.ID,
		Title:    "삭제될 게시물",
		Image:    "https://img.artmoa.example/user_abc.png",
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodDelete, "/api/posts/"+p.ID.String(), nil), owner))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d, body %s", w.Code, w.Body)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "user_abc.png" {
		t.Errorf("blob cleanup: got %v", blobs.deleted)
	}

	// An externally hosted image must not be touched.
	foreign, err := postStore.Create(&models.Post{
		UserID:   owner.ID,
		Title:    "외부 이미지",
		Image:    "https://elsewhere.example/pic.png",
		IsPublic: true,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodDelete, "/api/posts/"+foreign.ID.String(), nil), owner))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}
	if len(blobs.deleted) != 1 {
		t.Errorf("foreign URL must not be deleted from the bucket: got %v", blobs.deleted)
	}
}

func TestPostDetailDegradesWithoutAnalysis(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)

	postStore := store.NewPostStore(db)
	prompt := "a test prompt"
	p, err := postStore.Create(&models.Post{
		UserID:          owner.ID,
		Title:           "분석 없는 게시물",
		Image:           "https://img.artmoa.example/x.png",
		GeneratedPrompt: &prompt,
		IsPublic:        true,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { postStore.Delete(p.ID) })

	// Vision and curation not configured at all.
	posts := NewPosts(postStore, nil, nil, nil)
	router := postsRouter(posts, NewComments(store.NewCommentStore(db), postStore))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/"+p.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("detail should still render: got %d", w.Code)
	}
}

func TestPostDetailNotFound(t *testing.T) {
	db := testDB(t)

	posts := NewPosts(store.NewPostStore(db), nil, nil, nil)
	router := postsRouter(posts, NewComments(store.NewCommentStore(db), store.NewPostStore(db)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing post: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: got %d", w.Code)
	}
}
