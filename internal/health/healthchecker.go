package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Checker is implemented by component-level checkers (store, future
// dependencies). IsHealthy must be non-blocking; Start runs the probe loop
// until the context is cancelled.
type Checker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceChecker folds component checkers into a single readiness flag for
// the registry process.
type ServiceChecker struct {
	healthy atomic.Int32
	deps    []Checker
	log     zerolog.Logger
}

func NewServiceChecker(log zerolog.Logger, deps ...Checker) *ServiceChecker {
	c := &ServiceChecker{deps: deps, log: log}
	c.healthy.Store(0)
	return c
}

// IsHealthy returns the cached service readiness.
func (c *ServiceChecker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Start re-evaluates dependency health on every tick and logs transitions.
func (c *ServiceChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := int32(0)
	eval := func() {
		up := int32(1)
		for _, dep := range c.deps {
			if !dep.IsHealthy() {
				up = 0
				break
			}
		}
		c.healthy.Store(up)
		if up != prev {
			if up == 1 {
				c.log.Info().Msg("registry health: UP")
			} else {
				c.log.Error().Stack().Msg("registry health: DOWN")
			}
			prev = up
		}
	}

	eval()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eval()
		}
	}
}
