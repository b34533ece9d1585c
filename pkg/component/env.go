package component

import (
	"log/slog"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/node"
	"github.com/vango-dev/retain/pkg/scheduler"
)

// Stats counts component activity since the last reset.
type Stats struct {
	Rendered  int // instances rendered
	Dirty     int // of which had changed state
	Created   int // instances constructed
	Released  int // instances released
	Delivered int // messages delivered from events and resolvers
	Dropped   int // messages whose instance was gone
}

// Env is the shared environment of one instance tree: the arena, the
// scheduler deferred commands run on, and the hook that requests a new
// top-level render pass. All methods must be called on the scheduler's
// goroutine.
type Env struct {
	arena         Arena
	sched         scheduler.Scheduler
	requestRender func()
	logger        *slog.Logger
	stats         Stats
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) EnvOption {
	return func(e *Env) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEnv creates an Env. requestRender is called whenever state changed
// outside a render pass, or during one in a way that needs another pass.
func NewEnv(sched scheduler.Scheduler, requestRender func(), opts ...EnvOption) *Env {
	if requestRender == nil {
		requestRender = func() {}
	}
	e := &Env{
		sched:         sched,
		requestRender: requestRender,
		logger:        slog.Default().With("component", "assembly"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RenderTop renders p at a top-level position whose previous instance was
// prev. It returns the Ref of the instance now at that position and its
// output. Events raised by the top-level instance are dropped.
func (e *Env) RenderTop(p Prefab, prev Ref) (Ref, []*node.Node) {
	old := &tree{ref: prev}
	nodes, t := e.assemble(p, prev, Ref{})
	e.releaseUnused(old, t)
	return t.ref, nodes
}

// Release discards the instance at ref and everything below it.
func (e *Env) Release(ref Ref) {
	e.release(ref)
}

// Instance returns the live instance at ref.
func (e *Env) Instance(ref Ref) (Instance, bool) {
	return e.arena.Get(ref)
}

// Post delivers msg to the instance at ref as if an event handler of that
// instance had produced it.
func (e *Env) Post(ref Ref, msg any) bool {
	return e.deliver(ref, msg)
}

// Live returns the number of live instances.
func (e *Env) Live() int {
	return e.arena.Len()
}

// Stats returns the counters accumulated since the last reset.
func (e *Env) Stats() Stats {
	return e.stats
}

// ResetStats clears the counters.
func (e *Env) ResetStats() {
	e.stats = Stats{}
}

func (e *Env) release(ref Ref) {
	inst, ok := e.arena.Get(ref)
	if !ok {
		return
	}
	e.arena.Release(ref)
	e.stats.Released++
	inst.release()
}

// deliver posts msg to the instance at ref and requests a render.
func (e *Env) deliver(ref Ref, msg any) bool {
	inst, ok := e.arena.Get(ref)
	if !ok {
		e.stats.Dropped++
		e.logger.Debug("message dropped", "error", errors.New("E002"))
		return false
	}
	e.stats.Delivered++
	inst.Post(msg)
	e.requestRender()
	return true
}
