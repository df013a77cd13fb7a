package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/topio-market/topio-registry/internal/config"
)

func TestNewStoreSQLite(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "registry.db")

	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("ping after NewStore: %v", err)
	}
}

func TestNewStoreDefaultsToLocalState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TOPIO_REGISTRY_HOME", home)

	cfg := config.NewForTesting()
	cfg.SQLitePath = ""

	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if _, err := os.Stat(filepath.Join(home, "registry.db")); err != nil {
		t.Fatalf("database not created under override home: %v", err)
	}
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "oracle"

	if _, err := NewStore(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
