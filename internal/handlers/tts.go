// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// Synthesizer is the text-to-speech surface the handler needs.
// *speech.Client satisfies it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TTS reads captions aloud as downloadable WAV audio.
type TTS struct {
	speech Synthesizer
}

// NewTTS creates a TTS handler.
func NewTTS(speech Synthesizer) *TTS {
	return &TTS{speech: speech}
}

// ReadCaption synthesizes the caption query parameter and streams the
// audio back as an attachment.
func (h *TTS) ReadCaption(w http.ResponseWriter, r *http.Request) {
	caption := strings.TrimSpace(r.URL.Query().Get("caption"))
	if caption == "" {
		respondError(w, http.StatusBadRequest, "캡션이 제공되지 않았습니다.")
		return
	}

	if h.speech == nil {
		respondError(w, http.StatusServiceUnavailable, "음성 서비스가 설정되지 않았습니다.")
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), caption)
	if err != nil {
		slog.Error("speech synthesis failed", "error", err)
		respondError(w, http.StatusInternalServerError, "음성 데이터를 생성하지 못했습니다.")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `attachment; filename="caption.wav"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.Write(audio)
}
