package utils

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay pauses for a random duration between min and max. It returns
// early with the context's error if the run is cancelled mid-pause. Sources
// rate-limit aggressively, so the window is a configured policy rather than
// a hidden constant.
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	if max < min {
		max = min
	}
	d := min
	if max > min {
		d = min + time.Duration(rand.Int63n(int64(max-min)))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
