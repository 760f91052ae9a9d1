package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/qnkhuat/tetristerm/pkg/scores"
	"github.com/qnkhuat/tetristerm/pkg/scores/sqlite/migrations"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scores.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(" "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenCreatesDirectoryAndReopens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "scores.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Add(context.Background(), scores.Entry{Name: "ann", Score: 40}); err != nil {
		t.Fatalf("add score: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	top, err := reopened.Top(context.Background(), scores.DefaultTop)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0] != (scores.Entry{Name: "ann", Score: 40}) {
		t.Fatalf("top = %v, want [ann 40]", top)
	}
}

func TestTopOrdersByScore(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		e := scores.Entry{Name: "p" + string(rune('a'+i)), Score: i * 10}
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("add %v: %v", e, err)
		}
	}
	if err := store.Add(ctx, scores.Entry{Name: "tie", Score: 110}); err != nil {
		t.Fatalf("add tie: %v", err)
	}

	top, err := store.Top(ctx, scores.DefaultTop)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != scores.DefaultTop {
		t.Fatalf("len(top) = %d, want %d", len(top), scores.DefaultTop)
	}
	if top[0].Name != "pl" || top[1].Name != "tie" {
		t.Fatalf("unexpected head %v", top[:2])
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("entries not descending at %d: %v", i, top)
		}
	}

	empty, err := store.Top(ctx, 0)
	if err != nil {
		t.Fatalf("top 0: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("top 0 = %v", empty)
	}
}

func TestAddRejectsInvalidEntry(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.Add(context.Background(), scores.Entry{Name: "", Score: 1})
	if !errors.Is(err, scores.ErrInvalidEntry) {
		t.Fatalf("err = %v, want %v", err, scores.ErrInvalidEntry)
	}
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Add(ctx, scores.Entry{Name: "x", Score: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("add err = %v, want canceled", err)
	}
	if _, err := store.Top(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("top err = %v, want canceled", err)
	}
}

func TestMigrationsApplyOnce(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := applyMigrations(context.Background(), store.sqlDB, migrations.FS); err != nil {
		t.Fatalf("reapply migrations: %v", err)
	}

	var count int
	if err := store.sqlDB.QueryRow("SELECT COUNT(*) FROM " + migrationTable).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("applied migrations = %d, want 1", count)
	}
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()

	got := extractUpMigration("-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n")
	if got != "\nCREATE TABLE a (x INT);\n" {
		t.Fatalf("up = %q", got)
	}
	if got := extractUpMigration("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("plain = %q", got)
	}
}
