package postgres

import (
	"context"
	"os"
	"testing"

	"pet-playground/internal/domain/session"

	"github.com/google/uuid"
)

// Corre solo con TEST_DB_DSN apuntando a un Postgres descartable.
func openTestDB(t *testing.T) *SessionRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSessionRepo(db, "test-"+uuid.NewString())
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM pet_sessions WHERE id = $1`, repo.id)
	})
	return repo
}

func TestSessionRepo_GetMissing(t *testing.T) {
	repo := openTestDB(t)

	s, err := repo.Get(context.Background())
	if err != nil || s != nil {
		t.Fatalf("expected nil session, got %+v err=%v", s, err)
	}
}

func TestSessionRepo_SetThenGet(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	in := session.PersistedSession{PetStates: []session.PetEntry{
		{PetName: "Milo", PetType: "dog", PetColor: "brown", ElLeft: "10px", ElBottom: "0px"},
	}}
	in.SetCounter(3)
	if err := repo.Set(ctx, in); err != nil {
		t.Fatalf("set: %v", err)
	}

	in.SetCounter(4)
	if err := repo.Set(ctx, in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	out, err := repo.Get(ctx)
	if err != nil || out == nil {
		t.Fatalf("get: %v", err)
	}
	if out.Counter() != 4 || len(out.PetStates) != 1 || out.PetStates[0].PetName != "Milo" {
		t.Fatalf("unexpected session %+v", out)
	}
}

func TestNewSessionRepo_DefaultID(t *testing.T) {
	if r := NewSessionRepo(nil, "  "); r.id != "default" {
		t.Fatalf("expected default id, got %q", r.id)
	}
}
