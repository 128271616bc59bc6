// Package waiter polls a predicate until it holds or a timeout expires.
package waiter

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("poll interval must be positive")
	ErrInvalidTimeout  = errors.New("timeout must not be negative")
)

// Clock abstracts time so that polling can be tested without sleeping
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock is the wall clock
var RealClock Clock = realClock{}

// Predicate is re-evaluated on each poll. An error aborts the wait.
type Predicate func() (bool, error)

type Waiter struct {
	clock Clock
}

// New creates a Waiter on the given clock, or on the wall clock when clock is nil
func New(clock Clock) *Waiter {
	if clock == nil {
		clock = RealClock
	}
	return &Waiter{clock: clock}
}

// Clock returns the clock the waiter sleeps on
func (w *Waiter) Clock() Clock {
	return w.clock
}

// WaitUntil evaluates pred immediately and then every interval until it returns true or
// timeout has elapsed. Timing out is reported as false with a nil error. The last sleep
// is clamped to the remaining time, so the overshoot never exceeds one interval.
func (w *Waiter) WaitUntil(pred Predicate, timeout, interval time.Duration) (bool, error) {
	if interval <= 0 {
		return false, ErrInvalidInterval
	}
	if timeout < 0 {
		return false, ErrInvalidTimeout
	}

	start := w.clock.Now()
	for {
		ok, err := pred()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		elapsed := w.clock.Now().Sub(start)
		if elapsed >= timeout {
			return false, nil
		}

		wait := interval
		if remaining := timeout - elapsed; remaining < wait {
			wait = remaining
		}
		w.clock.Sleep(wait)
	}
}
