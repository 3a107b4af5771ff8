// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// JSON API. Gallery reads are public; everything that writes requires a
// fully authenticated session.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"artmoa/internal/handlers"
	"artmoa/internal/middleware"
	"artmoa/internal/session"
)

// Handlers bundles the handler groups the router mounts.
type Handlers struct {
	Auth     *handlers.Auth
	Generate *handlers.Generate
	Posts    *handlers.Posts
	Comments *handlers.Comments
	TTS      *handlers.TTS
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, h *Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Account lifecycle — accessible without a session.
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		// 2FA verification needs a session but not a completed TOTP step.
		r.Post("/auth/2fa/verify", h.Auth.TwoFAVerify)

		// Public reads.
		r.Get("/posts", h.Posts.PublicGallery)
		r.Get("/posts/{id}", h.Posts.Detail)
		r.Get("/posts/{id}/comments", h.Comments.List)
		r.Get("/tts", h.TTS.ReadCaption)

		// Fully authenticated area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/2fa/setup", h.Auth.TwoFASetup)

			// Generation burns provider quota; rate-limit it per client.
			r.Group(func(r chi.Router) {
				limiter := middleware.NewRateLimiter(10, time.Minute)
				r.Use(limiter.Middleware)
				r.Post("/generate", h.Generate.Create)
			})

			r.Get("/me/generations", h.Generate.Recent)

			r.Get("/posts/mine", h.Posts.MyGallery)
			r.Post("/posts", h.Posts.Create)
			r.Patch("/posts/{id}", h.Posts.Update)
			r.Delete("/posts/{id}", h.Posts.Delete)

			r.Post("/posts/{id}/comments", h.Comments.Create)
			r.Patch("/comments/{id}", h.Comments.Update)
			r.Delete("/comments/{id}", h.Comments.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
