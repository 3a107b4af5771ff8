package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"artmoa/internal/generation"
	"artmoa/internal/middleware"
	"artmoa/internal/models"
	"artmoa/internal/session"
	"artmoa/internal/store"
)

type fakeRunner struct {
	result *generation.Result
	err    error
	calls  int
	prompt string
	owner  uuid.UUID
}

func (f *fakeRunner) Run(ctx context.Context, rawPrompt string, ownerID uuid.UUID) (*generation.Result, error) {
	f.calls++
	f.prompt = rawPrompt
	f.owner = ownerID
	return f.result, f.err
}

func authedRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return r.WithContext(middleware.WithSession(r.Context(), &session.Data{
		UserID:    uuid.New(),
		Nickname:  "앨리스",
		TwoFADone: true,
	}))
}

func TestGenerateCreate(t *testing.T) {
	runner := &fakeRunner{result: &generation.Result{
		ImageURL:        "https://img.artmoa.example/user_x.png",
		GeneratedPrompt: "A dreamy watercolor image of a cat astronaut.",
	}}
	h := NewGenerate(runner, nil)

	r := authedRequest(http.MethodPost, "/api/generate", `{"prompt": "우주를 떠다니는 고양이"}`)
	w := httptest.NewRecorder()
	h.Create(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body)
	}
	var res generation.Result
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ImageURL != runner.result.ImageURL || res.GeneratedPrompt != runner.result.GeneratedPrompt {
		t.Errorf("body: got %+v", res)
	}
	if runner.calls != 1 || runner.prompt != "우주를 떠다니는 고양이" {
		t.Errorf("runner call: calls=%d prompt=%q", runner.calls, runner.prompt)
	}
}

func TestGenerateCreateEmptyPrompt(t *testing.T) {
	runner := &fakeRunner{}
	h := NewGenerate(runner, nil)

	for _, body := range []string{`{"prompt": ""}`, `{"prompt": "   "}`, `{}`} {
		r := authedRequest(http.MethodPost, "/api/generate", body)
		w := httptest.NewRecorder()
		h.Create(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), "프롬프트를 입력해주세요.") {
			t.Errorf("body %s: message got %s", body, w.Body)
		}
	}
	if runner.calls != 0 {
		t.Errorf("pipeline must not run for empty prompts, got %d calls", runner.calls)
	}
}

func TestGenerateCreateMalformedJSON(t *testing.T) {
	h := NewGenerate(&fakeRunner{}, nil)

	r := authedRequest(http.MethodPost, "/api/generate", `{prompt`)
	w := httptest.NewRecorder()
	h.Create(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestGenerateRecent(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db)

	gens := store.NewGenerationStore(db)
	prompt := "달 위의 등대"
	for i := 0; i < 3; i++ {
		if _, err := gens.Create(context.Background(), &models.Generation{
			UserID:   owner.ID,
			Prompt:   prompt,
			ImageURL: "https://img.artmoa.example/recent.png",
		}); err != nil {
			t.Fatalf("seed generation: %v", err)
		}
	}

	h := NewGenerate(&fakeRunner{}, gens)

	w := httptest.NewRecorder()
	h.Recent(w, asUser(httptest.NewRequest(http.MethodGet, "/api/me/generations?limit=2", nil), owner))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body)
	}
	var body struct {
		Generations []models.Generation `json:"generations"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Generations) != 2 {
		t.Fatalf("limit: got %d records", len(body.Generations))
	}
	if body.Generations[0].Prompt != prompt {
		t.Errorf("prompt: got %q", body.Generations[0].Prompt)
	}
}

func TestGenerateCreateStageMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"rewrite", generation.ErrPromptGeneration, "프롬프트 생성에 실패했습니다."},
		{"synthesis", generation.ErrImageGeneration, "이미지 생성에 실패했습니다."},
		{"persist", generation.ErrArtifactPersist, "이미지 저장에 실패했습니다."},
		{"record", generation.ErrRecordSave, "이미지 저장에 실패했습니다."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewGenerate(&fakeRunner{err: tc.err}, nil)

			r := authedRequest(http.MethodPost, "/api/generate", `{"prompt": "고양이"}`)
			w := httptest.NewRecorder()
			h.Create(w, r)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status: got %d", w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tc.want {
				t.Errorf("message: got %q, want %q", body["error"], tc.want)
			}
		})
	}
}
