package node

import (
	"maps"
	"slices"

	"github.com/vango-dev/retain/pkg/dom"
)

// Handler is one event handler slot. A slot is unbound while ID is zero and
// Fn holds the closure; binding moves the closure into the dispatch registry
// and leaves only the id behind.
type Handler struct {
	ID uint64
	Fn func(dom.Event)
}

// Bound reports whether the slot carries a handler id.
func (h Handler) Bound() bool {
	return h.ID != 0
}

// Events maps event names to ordered handler slots.
type Events struct {
	table map[string][]Handler
}

// NewEvents creates an empty event table.
func NewEvents() Events {
	return Events{}
}

// On appends an unbound handler for name.
func (e *Events) On(name string, fn func(dom.Event)) {
	if fn == nil {
		return
	}
	e.push(name, Handler{Fn: fn})
}

// PushBound appends an already-bound slot for name.
func (e *Events) PushBound(name string, id uint64) {
	e.push(name, Handler{ID: id})
}

func (e *Events) push(name string, h Handler) {
	if e.table == nil {
		e.table = make(map[string][]Handler)
	}
	e.table[name] = append(e.table[name], h)
}

// Slots returns the slots of name. The returned slice aliases the table.
func (e Events) Slots(name string) []Handler {
	return e.table[name]
}

// Slot returns a pointer to slot idx of name, or nil.
func (e Events) Slot(name string, idx int) *Handler {
	slots := e.table[name]
	if idx < 0 || idx >= len(slots) {
		return nil
	}
	return &slots[idx]
}

// Has reports whether name has at least one slot entry.
func (e Events) Has(name string) bool {
	_, ok := e.table[name]
	return ok
}

// Names returns the event names in sorted order.
func (e Events) Names() []string {
	return slices.Sorted(maps.Keys(e.table))
}

// Len returns the number of event names.
func (e Events) Len() int {
	return len(e.table)
}

// BoundIDs returns every bound handler id.
func (e Events) BoundIDs() []uint64 {
	var ids []uint64
	for _, name := range e.Names() {
		for _, h := range e.table[name] {
			if h.Bound() {
				ids = append(ids, h.ID)
			}
		}
	}
	return ids
}
