package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/topio-market/topio-registry/internal/api"
	"github.com/topio-market/topio-registry/internal/store/sqlite"
)

// startTestRegistry serves the real router over a throwaway SQLite file and
// returns its base URL.
func startTestRegistry(t *testing.T) string {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := sqlite.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	st := sqlite.NewWithDB(db)
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(api.NewRouter(st, 2*time.Second, nil))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("topioctl %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestUsersRegisterAndGet(t *testing.T) {
	url := startTestRegistry(t)

	out := runCommand(t, "--api", url, "users", "register", "--name", "User ABC", "--namespace", "abc")
	if !strings.Contains(out, `"user_namespace": "abc"`) {
		t.Fatalf("unexpected register output: %s", out)
	}

	out = runCommand(t, "--api", url, "users", "get", "1")
	if !strings.Contains(out, `"name": "User ABC"`) {
		t.Fatalf("unexpected get output: %s", out)
	}
}

func TestAssetRoundTrip(t *testing.T) {
	url := startTestRegistry(t)

	runCommand(t, "--api", url, "users", "register", "--name", "User ABC", "--namespace", "abc")
	runCommand(t, "--api", url, "asset-types", "register", "--id", "file", "--description", "downloadable file")

	out := runCommand(t, "--api", url, "assets", "register",
		"--owner", "1", "--type", "file", "--local-id", "hdfs://foo.bar.ttl")
	if !strings.Contains(out, `"topio_id": "topio.abc.1.file"`) {
		t.Fatalf("unexpected register output: %s", out)
	}

	out = runCommand(t, "--api", url, "assets", "topio-id",
		"--owner", "1", "--type", "file", "--local-id", "hdfs://foo.bar.ttl")
	if strings.TrimSpace(out) != "topio.abc.1.file" {
		t.Fatalf("unexpected topio-id output: %q", out)
	}

	out = runCommand(t, "--api", url, "assets", "local-id", "topio.abc.1.file")
	if strings.TrimSpace(out) != "hdfs://foo.bar.ttl" {
		t.Fatalf("unexpected local-id output: %q", out)
	}

	out = runCommand(t, "--api", url, "asset-types", "list")
	if !strings.Contains(out, `"id": "file"`) {
		t.Fatalf("unexpected list output: %s", out)
	}
}
