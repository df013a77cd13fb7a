package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                         { return f.name }
func (f *fakeChecker) IsHealthy() bool                      { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(context.Context, time.Duration) {}

func TestServiceCheckerTransitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{name: "store"}
	a.healthy.Store(1)

	svc := NewServiceChecker(zerolog.Nop(), a)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, svc.IsHealthy)

	a.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })

	a.healthy.Store(1)
	waitTrue(t, svc.IsHealthy)
}

func TestServiceCheckerStartsUnhealthy(t *testing.T) {
	svc := NewServiceChecker(zerolog.Nop())
	if svc.IsHealthy() {
		t.Fatal("service checker must start unhealthy")
	}
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
