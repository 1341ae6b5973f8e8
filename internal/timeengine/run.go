package timeengine

import (
	"context"
	"time"
)

// DefaultInterval is the display refresh cadence.
const DefaultInterval = 10 * time.Millisecond

// Run polls the engine every interval and hands the displayed duration to
// onTick until the engine leaves Running or ctx is done. onTick runs on the
// calling goroutine and may call back into the engine. The ticker is
// released on every return path.
func (e *Engine) Run(ctx context.Context, interval time.Duration, onTick func(time.Duration)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !e.Running() {
			return nil
		}
		d := e.Poll()
		if onTick != nil {
			onTick(d)
		}
		if !e.Running() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
