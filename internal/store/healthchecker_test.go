package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type pingStore struct {
	failing atomic.Bool
}

func (p *pingStore) Users() Users           { return nil }
func (p *pingStore) AssetTypes() AssetTypes { return nil }
func (p *pingStore) Assets() Assets         { return nil }
func (p *pingStore) Close() error           { return nil }

func (p *pingStore) Ping(context.Context) error {
	if p.failing.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestHealthCheckerTracksPing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ps := &pingStore{}
	hc := NewHealthChecker(ps, zerolog.Nop(), time.Second)
	if hc.IsHealthy() {
		t.Fatal("checker must start unhealthy")
	}

	go hc.Start(ctx, 10*time.Millisecond)
	waitFor(t, hc.IsHealthy)

	ps.failing.Store(true)
	waitFor(t, func() bool { return !hc.IsHealthy() })

	ps.failing.Store(false)
	waitFor(t, hc.IsHealthy)
}

func waitFor(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}
