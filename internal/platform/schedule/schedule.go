// Package schedule arms cancellable one-shot and recurring tasks.
//
// Callbacks run on a goroutine owned by the scheduler; callers that share state
// with them must synchronise it themselves.
package schedule

import (
	"context"
	"time"
)

// Cancel stops a scheduled task. Calling it more than once is a no-op.
// A callback that already started is not interrupted.
type Cancel func()

type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
	Every(d time.Duration, fn func()) Cancel
}

func noop() {}

// Real schedules on the runtime timers.
type Real struct{}

func (Real) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

func (Real) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		return noop
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fn()
			case <-ctx.Done():
				return
			}
		}
	}()
	return Cancel(cancel)
}
