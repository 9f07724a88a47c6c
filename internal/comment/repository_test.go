package comment

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evcraddock/golden-profile/internal/db"
)

func TestInsertAndQueryAll(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	c, err := store.Insert(ctx, Input{Name: "Mia", Message: "Golden is the best"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if c.Name != "Mia" {
		t.Errorf("name = %q, want %q", c.Name, "Mia")
	}
	if c.Message != "Golden is the best" {
		t.Errorf("message = %q, want %q", c.Message, "Golden is the best")
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected created_at to be assigned")
	}

	comments, err := store.QueryAll(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].ID != c.ID {
		t.Errorf("id = %d, want %d", comments[0].ID, c.ID)
	}
}

func TestQueryAllEmpty(t *testing.T) {
	store := testStore(t)

	comments, err := store.QueryAll(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if comments == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(comments) != 0 {
		t.Errorf("got %d comments, want 0", len(comments))
	}
}

func TestQueryAllNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, msg := range []string{"first!", "second", "third"} {
		if _, err := store.Insert(ctx, Input{Name: "Leo", Message: msg}); err != nil {
			t.Fatalf("insert %q: %v", msg, err)
		}
	}

	comments, err := store.QueryAll(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}

	// Newest first
	if comments[0].Message != "third" {
		t.Errorf("first comment = %q, want %q", comments[0].Message, "third")
	}
	if comments[2].Message != "first!" {
		t.Errorf("last comment = %q, want %q", comments[2].Message, "first!")
	}
}

func TestQueryAllMissingTable(t *testing.T) {
	d := testDB(t)
	store, err := NewSQLiteStore(d, "NotProvisioned")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.QueryAll(context.Background())
	if !errors.Is(err, ErrCollectionAbsent) {
		t.Fatalf("err = %v, want ErrCollectionAbsent", err)
	}

	comments, err := QueryAll(context.Background(), store)
	if err != nil {
		t.Fatalf("QueryAll helper: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d comments, want 0", len(comments))
	}
}

func TestInsertMissingTable(t *testing.T) {
	d := testDB(t)
	store, err := NewSQLiteStore(d, "NotProvisioned")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := store.Insert(context.Background(), Input{Name: "Mia", Message: "hello there"}); err == nil {
		t.Fatal("expected error inserting into missing table")
	}
}

func TestNewSQLiteStoreInvalidTable(t *testing.T) {
	if _, err := NewSQLiteStore(testDB(t), "Comments; --"); err == nil {
		t.Fatal("expected error for invalid table name")
	}
}

func TestUnconfigured(t *testing.T) {
	ctx := context.Background()
	var g Gateway = Unconfigured{}

	if _, err := g.Insert(ctx, Input{Name: "Mia", Message: "hello there"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("insert err = %v, want ErrNotConfigured", err)
	}

	comments, err := QueryAll(ctx, g)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d comments, want 0", len(comments))
	}
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path, DefaultTable)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return d
}

// testStore creates a test DB and returns a comment store over the default table.
func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(testDB(t), DefaultTable)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}
