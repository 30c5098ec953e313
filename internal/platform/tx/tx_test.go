package tx_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"helmwatch/internal/platform/sqlite"
	"helmwatch/internal/platform/tx"
)

func TestSQLManagerCommitsAndRollsBack(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `CREATE TABLE marks (n INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	m := tx.NewSQLManager(db)

	err = m.Within(ctx, func(ctx context.Context) error {
		_, err := tx.From(ctx, db).ExecContext(ctx, `INSERT INTO marks (n) VALUES (1)`)
		return err
	})
	if err != nil {
		t.Fatalf("commit path: %v", err)
	}

	boom := errors.New("boom")
	err = m.Within(ctx, func(ctx context.Context) error {
		if _, err := tx.From(ctx, db).ExecContext(ctx, `INSERT INTO marks (n) VALUES (2)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM marks`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rolled back insert must not persist, got %d rows", count)
	}
}

func TestNoopManagerRunsInline(t *testing.T) {
	t.Parallel()
	called := false
	if err := (tx.NoopManager{}).Within(context.Background(), func(context.Context) error {
		called = true
		return nil
	}); err != nil || !called {
		t.Fatalf("noop manager: called=%v err=%v", called, err)
	}
}
