package generator

import (
	"context"
	"time"
)

// Clock provides the pauses between progress stages.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock waits for the full duration unless ctx is done first.
type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopClock returns immediately.
type NopClock struct{}

func (NopClock) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }
