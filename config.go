package retain

import (
	"log/slog"
	"time"

	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dispatch"
	"github.com/vango-dev/retain/pkg/reconcile"
)

// DefaultMaxFollowUpPasses bounds consecutive passes requested by state
// changes made during a pass.
const DefaultMaxFollowUpPasses = 16

// Config configures an App.
type Config struct {
	// MaxFollowUpPasses bounds how many passes in a row may be triggered by
	// lazy updates made during the previous pass. Once exceeded, rendering
	// waits for the next external trigger (an event or a resolved task).
	// Default: 16.
	MaxFollowUpPasses int

	// Registry is the handler dispatch table. A fresh one is created if nil.
	Registry *dispatch.Registry

	// Observer receives a report after every pass. Optional.
	Observer Observer

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{MaxFollowUpPasses: DefaultMaxFollowUpPasses}
}

func (c *Config) applyDefaults() {
	if c.MaxFollowUpPasses <= 0 {
		c.MaxFollowUpPasses = DefaultMaxFollowUpPasses
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Registry == nil {
		c.Registry = dispatch.New(c.Logger.With("component", "dispatch"))
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
}

// PassReport describes one completed render pass.
type PassReport struct {
	Pass       uint64
	FollowUp   bool
	Duration   time.Duration
	Mounts     int
	Reconcile  reconcile.Stats
	Components component.Stats
	Live       int // live component instances
	Handlers   int // registered handler ids
}

// Observer is notified about render passes. Methods run on the scheduler
// goroutine.
type Observer interface {
	// PassStarted is called before a pass. The returned function is called
	// with the report once the pass has committed.
	PassStarted(pass uint64, followUp bool) func(PassReport)

	// BudgetExceeded is called when follow-up passes were cut off.
	BudgetExceeded(passes int)
}

type nopObserver struct{}

func (nopObserver) PassStarted(uint64, bool) func(PassReport) { return func(PassReport) {} }
func (nopObserver) BudgetExceeded(int)                        {}
