package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/store"
	"github.com/topio-market/topio-registry/internal/store/storetest"
)

func setupTempStore(t *testing.T) store.Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return NewWithDB(db)
}

func TestStoreCompliance(t *testing.T) {
	storetest.Run(t, setupTempStore)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "registry.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestClassifyErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, model.ErrNotFound},
		{"unique", errors.New("constraint failed: UNIQUE constraint failed: topio_user.name (2067)"), model.ErrConflict},
		{"foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), model.ErrInvalidReference},
		{"other", errors.New("disk I/O error"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyErr(tc.in)
			if tc.want == nil {
				if tc.in == nil && got != nil {
					t.Fatalf("classifyErr(nil) = %v", got)
				}
				if tc.in != nil && (errors.Is(got, model.ErrConflict) || errors.Is(got, model.ErrNotFound) || errors.Is(got, model.ErrInvalidReference)) {
					t.Fatalf("unexpected classification: %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("classifyErr(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestClosedDatabaseSurfacesError(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	s := NewWithDB(db)
	_ = db.Close()

	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error on closed database")
	}
	_, err = s.Users().Create(context.Background(), &model.User{Name: "x", Namespace: "y"})
	if err == nil || errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected unclassified storage error, got %v", err)
	}
}
