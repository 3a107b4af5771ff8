// store_test.go provides shared test infrastructure for store integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"artmoa/internal/database"
	"artmoa/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
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

// testUser creates a throwaway user and registers cleanup. Deleting the user
// exercises the cascade over posts, comments, and generations.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	users := NewUserStore(db)
	email := "test-" + uuid.NewString()[:8] + "@artmoa.local"
	u, err := users.Create(email, "password123", "테스터")
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

// testPost creates a post owned by the given user.
func testPost(t *testing.T, db *sql.DB, owner *models.User, public bool) *models.Post {
	t.Helper()

	posts := NewPostStore(db)
	prompt := "a test prompt"
	p, err := posts.Create(&models.Post{
		UserID:          owner.ID,
		Title:           "Test Artwork " + uuid.NewString()[:8],
		Image:           "https://storage.example.com/test.png",
		GeneratedPrompt: &prompt,
		IsPublic:        public,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}
