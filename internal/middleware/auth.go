// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"artmoa/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// LoadSession resolves the session cookie against Valkey and, when a valid
// session exists, attaches its data to the request context. Requests
// without a session pass through untouched.
func LoadSession(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := sessions.Get(r.Context(), r)
			if err != nil {
				slog.Error("session lookup failed", "error", err)
			}
			if data != nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a fully authenticated session.
// Accounts with 2FA enabled must also have completed the TOTP step.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := SessionFromCtx(r.Context())
		if data == nil || !data.TwoFADone {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "로그인이 필요합니다."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx returns the session data loaded by LoadSession, or nil.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(sessionKey).(*session.Data)
	return data
}

// WithSession returns a context carrying the given session data. Test
// helpers use it to simulate authenticated requests.
func WithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, sessionKey, data)
}
