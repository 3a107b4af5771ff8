// handlers_test.go provides shared infrastructure for handler integration
// tests that need PostgreSQL. Tests are skipped when the database is
// unavailable; sessions are injected directly into the request context so
// Valkey is not required here.
package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"artmoa/internal/database"
	"artmoa/internal/middleware"
	"artmoa/internal/models"
	"artmoa/internal/session"
	"artmoa/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "artmoa")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "artmoa")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	users := store.NewUserStore(db)
	email := "handler-" + uuid.NewString()[:8] + "@artmoa.local"
	u, err := users.Create(email, "password123", "핸들러테스터")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		if err := users.Delete(u.ID); err != nil {
			t.Errorf("cleanup user: %v", err)
		}
	})
	return u
}

// asUser attaches a completed session for the given user to the request.
func asUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), &session.Data{
		UserID:    u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		TwoFADone: true,
	}))
}

// postsRouter mounts the post and comment routes the way the main router
// does, minus the auth middleware (sessions are injected per request).
func postsRouter(posts *Posts, comments *Comments) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/posts", posts.PublicGallery)
	r.Get("/api/posts/mine", posts.MyGallery)
	r.Get("/api/posts/{id}", posts.Detail)
	r.Post("/api/posts", posts.Create)
	r.Patch("/api/posts/{id}", posts.Update)
	r.Delete("/api/posts/{id}", posts.Delete)
	r.Get("/api/posts/{id}/comments", comments.List)
	r.Post("/api/posts/{id}/comments", comments.Create)
	r.Patch("/api/comments/{id}", comments.Update)
	r.Delete("/api/comments/{id}", comments.Delete)
	return r
}
