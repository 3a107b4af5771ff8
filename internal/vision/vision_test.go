package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyze(t *testing.T) {
	var gotKey, gotQuery string
	var gotBody analyzeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotQuery = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{
			"description": {"captions": [{"text": "a cat floating in space", "confidence": 0.93}]},
			"tags": [{"name": "cat", "confidence": 0.99}, {"name": "space", "confidence": 0.91}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "vk-test")

	a, err := c.Analyze(context.Background(), "https://storage.example.com/user_1.png")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Caption != "a cat floating in space" {
		t.Errorf("caption: got %q", a.Caption)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "cat" || a.Tags[1] != "space" {
		t.Errorf("tags: got %v", a.Tags)
	}
	if gotKey != "vk-test" {
		t.Errorf("subscription key header: got %q", gotKey)
	}
	if gotQuery != "visualFeatures=Description,Tags" {
		t.Errorf("query: got %q", gotQuery)
	}
	if gotBody.URL != "https://storage.example.com/user_1.png" {
		t.Errorf("request url: got %q", gotBody.URL)
	}
}

func TestAnalyzeEmptyCaption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description": {"captions": []}, "tags": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "vk-test")

	a, err := c.Analyze(context.Background(), "https://storage.example.com/x.png")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Caption != "" || len(a.Tags) != 0 {
		t.Errorf("expected empty analysis, got %+v", a)
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": "InvalidImageURL"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "vk-test")

	if _, err := c.Analyze(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewWithoutCredentials(t *testing.T) {
	if New("", "key") != nil {
		t.Error("missing endpoint should disable the client")
	}
	if New("https://cv.example.com", "") != nil {
		t.Error("missing key should disable the client")
	}
}
