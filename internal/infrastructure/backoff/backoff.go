package backoff

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff computes exponentially growing delays for consecutive failures of
// a background loop.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func New(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
		Jitter: true,
	}
}

// Duration returns the delay after the given number of consecutive failures.
// With jitter the delay lands in [d/2, d].
func (b *Backoff) Duration(failures int) time.Duration {
	if failures <= 0 {
		return b.Min
	}

	d := float64(b.Min) * math.Pow(b.Factor, float64(failures-1))
	if d > float64(b.Max) {
		d = float64(b.Max)
	}
	if b.Jitter {
		d *= 0.5 + rand.Float64()*0.5
	}
	return time.Duration(d)
}

// Wait sleeps for Duration(failures) or until ctx is done.
func (b *Backoff) Wait(ctx context.Context, failures int) error {
	t := time.NewTimer(b.Duration(failures))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
