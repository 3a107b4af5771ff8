package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeSpeech struct {
	audio []byte
	err   error
	got   string
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.got = text
	return f.audio, f.err
}

func TestReadCaption(t *testing.T) {
	wav := []byte("RIFF....WAVE")
	speech := &fakeSpeech{audio: wav}
	h := NewTTS(speech)

	r := httptest.NewRequest(http.MethodGet, "/api/tts?caption=%EC%9A%B0%EC%A3%BC+%EA%B3%A0%EC%96%91%EC%9D%B4", nil)
	w := httptest.NewRecorder()
	h.ReadCaption(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), wav) {
		t.Error("body should be the raw audio bytes")
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("content type: got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="caption.wav"` {
		t.Errorf("content disposition: got %q", cd)
	}
	if speech.got != "우주 고양이" {
		t.Errorf("synthesized text: got %q", speech.got)
	}
}

func TestReadCaptionMissing(t *testing.T) {
	h := NewTTS(&fakeSpeech{})

	for _, target := range []string{"/api/tts", "/api/tts?caption=", "/api/tts?caption=%20%20"} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		h.ReadCaption(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d", target, w.Code)
		}
		if !strings.Contains(w.Body.String(), "캡션이 제공되지 않았습니다.") {
			t.Errorf("%s: body got %s", target, w.Body)
		}
	}
}

func TestReadCaptionSynthesisFailure(t *testing.T) {
	h := NewTTS(&fakeSpeech{err: errors.New("upstream 500")})

	r := httptest.NewRequest(http.MethodGet, "/api/tts?caption=hello", nil)
	w := httptest.NewRecorder()
	h.ReadCaption(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestReadCaptionUnconfigured(t *testing.T) {
	h := NewTTS(nil)

	r := httptest.NewRequest(http.MethodGet, "/api/tts?caption=hello", nil)
	w := httptest.NewRecorder()
	h.ReadCaption(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d", w.Code)
	}
}
