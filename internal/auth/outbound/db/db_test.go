package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newTestDB(t *testing.T) (*DB, *pgxpool.Pool) {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("gosignin"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithInitScripts(filepath.Join("..", "..", "..", "..", "migrations", "000001_create_auth_users.up.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return NewDB(pool, instrument.NewNoop()), pool
}

func TestFindOrCreateUser(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db, pool := newTestDB(t)
	candidate := entity.NewUser(entity.ResolveUser{ID: "13800138000", Phone: "13800138000"})

	// Act
	created, err := db.FindOrCreateUser(ctx, candidate)

	// Assert
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Username != "user_8000" || created.Email != "" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected user %+v", created)
	}

	// a second call returns the stored row and ignores the new names
	again, err := db.FindOrCreateUser(ctx, entity.User{ID: "13800138000", Phone: "13800138000", Username: "other"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if again.Username != "user_8000" {
		t.Fatalf("existing user was overwritten: %+v", again)
	}

	var settings int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM auth_user_settings WHERE user_id = $1`, created.ID).Scan(&settings); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if settings != 1 {
		t.Fatalf("settings rows = %d, want 1", settings)
	}
}

func TestFindOrCreateUserResolvesByDestination(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db, pool := newTestDB(t)
	first, err := db.FindOrCreateUser(ctx, entity.NewUser(entity.ResolveUser{ID: "user-7", Phone: "13800138000"}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Act
	got, err := db.FindOrCreateUser(ctx, entity.NewUser(entity.ResolveUser{ID: "13800138000", Phone: "13800138000"}))

	// Assert
	if err != nil {
		t.Fatalf("sign-in lookup: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("resolved %q, want existing %q", got.ID, first.ID)
	}

	var users int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Fatalf("users = %d, want 1", users)
	}
}
