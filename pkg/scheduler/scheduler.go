// Package scheduler defers work to a single logical thread.
//
// Every state transition of a retained tree (message delivery, command
// resolution, render passes) runs as a function handed to a Scheduler.
// Implementations run functions one at a time, in submission order, on one
// goroutine, so the runtime never needs locks around its own state.
package scheduler

import (
	"log/slog"
	"runtime/debug"

	"github.com/vango-dev/retain/internal/errors"
)

// Scheduler runs deferred functions on the runtime's goroutine.
//
// Schedule must be safe to call from any goroutine. Functions scheduled from
// inside a running function run after it returns, never re-entrantly.
type Scheduler interface {
	Schedule(fn func())
}

// Func adapts an ordinary function to the Scheduler interface.
type Func func(fn func())

// Schedule calls f(fn).
func (f Func) Schedule(fn func()) { f(fn) }

// run executes fn, recovering and logging a panic so one failing task does
// not take down the loop.
func run(logger *slog.Logger, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			logger.Error("scheduled task panicked",
				"error", errors.New("E004").With("panic", r),
				"stack", string(debug.Stack()))
		}
	}()
	fn()
	return false
}
