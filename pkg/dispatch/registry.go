// Package dispatch maps handler ids to event closures.
//
// The reconciler registers each bound handler under a unique id and attaches
// one trampoline listener per slot to the live resource. The trampoline only
// carries the id; the closure is looked up at fire time, so a re-render can
// swap the closure behind an id without touching the listener.
package dispatch

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/dom"
)

// Registry is the handler dispatch table. Ids are unique for the lifetime of
// the process, not just of the registry.
type Registry struct {
	mu       sync.Mutex
	handlers map[uint64]func(dom.Event)
	logger   *slog.Logger
}

var nextID atomic.Uint64

// New creates an empty Registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default().With("component", "dispatch")
	}
	return &Registry{
		handlers: make(map[uint64]func(dom.Event)),
		logger:   logger,
	}
}

// GenID returns a fresh process-wide unique id.
func (r *Registry) GenID() uint64 {
	return nextID.Add(1)
}

// Add registers fn under id, replacing any previous closure.
func (r *Registry) Add(id uint64, fn func(dom.Event)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.handlers[id] = fn
	r.mu.Unlock()
}

// Remove deregisters id and reports whether it was registered.
func (r *Registry) Remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handlers[id]
	delete(r.handlers, id)
	return ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handlers[id]
	return ok
}

// Dispatch invokes the closure registered under id. It returns false when
// no closure is registered, which happens for listeners whose slot was
// dropped by a later render.
func (r *Registry) Dispatch(id uint64, ev dom.Event) bool {
	r.mu.Lock()
	fn, ok := r.handlers[id]
	r.mu.Unlock()

	if !ok {
		r.logger.Debug("dispatch to unregistered handler",
			"event", ev.Name,
			"error", errors.New("E020").With("id", id))
		return false
	}
	fn(ev)
	return true
}

// Trampoline returns the stable listener attached to live resources for id.
func (r *Registry) Trampoline(id uint64) dom.Listener {
	return func(ev dom.Event) {
		r.Dispatch(id, ev)
	}
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}
