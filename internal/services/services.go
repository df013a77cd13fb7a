package services

import (
	"context"
	"time"
)

// opCtx bounds a single registry operation. A non-positive timeout leaves
// the caller's context untouched.
func opCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
