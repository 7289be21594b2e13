package fetcher

import (
	"context"
	"time"
)

// Clock abstracts the waiter's time source so tests can drive the poll
// loop tick by tick without real delays.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// WaitOutcome is the terminal state of a login wait.
type WaitOutcome int

const (
	Authenticated WaitOutcome = iota
	TimedOut
)

// LoginWaiter polls an authentication probe at a fixed interval until the
// probe succeeds or the ceiling elapses. Probe errors are swallowed; a
// transient network failure mid-login is no reason to give up the wait.
type LoginWaiter struct {
	Interval time.Duration
	Ceiling  time.Duration
	Clock    Clock
}

// defaultPollInterval applies when a waiter is configured with a
// non-positive interval, which would otherwise never advance the loop.
const defaultPollInterval = 5 * time.Second

// Wait runs the poll loop. It returns Authenticated as soon as a probe
// reports success, TimedOut when the ceiling elapses first, and a non-nil
// error only when ctx is cancelled.
//
// Elapsed time is accumulated from completed intervals rather than wall
// clock so that an injected Clock yields exactly Ceiling/Interval probes.
func (w *LoginWaiter) Wait(ctx context.Context, probe func(context.Context) (bool, error)) (WaitOutcome, error) {
	clock := w.Clock
	if clock == nil {
		clock = realClock{}
	}
	interval := w.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	for elapsed := interval; elapsed <= w.Ceiling; elapsed += interval {
		select {
		case <-ctx.Done():
			return TimedOut, ctx.Err()
		case <-clock.After(interval):
		}

		ok, err := probe(ctx)
		if err != nil {
			continue
		}
		if ok {
			return Authenticated, nil
		}
	}
	return TimedOut, nil
}
