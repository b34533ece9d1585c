// Package dom defines the boundary between the runtime and a live output
// medium.
//
// A Document owns live resources (elements and text nodes) addressed by
// opaque Handles. The reconciler in pkg/reconcile is the only caller that
// mutates a Document during a render pass. Implementations live in
// pkg/dom/memdom (in-memory tree) and pkg/dom/remote (wire-encoded ops).
//
// Every mutating method may fail. Callers in this module treat failures as
// best-effort: the error is logged and the render pass continues.
package dom

import "errors"

// Handle addresses a live resource in a Document. The zero Handle means
// "no resource".
type Handle uint64

// Valid reports whether h addresses a resource.
func (h Handle) Valid() bool {
	return h != 0
}

// Event is a native event delivered by the output medium.
type Event struct {
	// Name is the event type ("click", "input", ...).
	Name string

	// Target is the resource the listener was attached to.
	Target Handle

	// Value carries the live value of input-like targets.
	Value string

	// Detail holds medium-specific extra fields (key codes, coordinates).
	Detail map[string]string
}

// Listener receives native events from a Document.
type Listener func(Event)

// Document is the output-medium binding.
type Document interface {
	CreateElement(tag string) (Handle, error)
	CreateText(content string) (Handle, error)

	AppendChild(parent, child Handle) error
	// InsertBefore places child immediately before ref, a child of parent.
	InsertBefore(parent, child, ref Handle) error
	ReplaceChild(parent, newChild, oldChild Handle) error
	RemoveChild(parent, child Handle) error

	GetAttribute(h Handle, name string) (string, bool)
	SetAttribute(h Handle, name, value string) error
	RemoveAttribute(h Handle, name string) error

	// SetValue sets the live value property of an input-like element,
	// which is independent from the declared "value" attribute once the
	// user has edited the field.
	SetValue(h Handle, value string) error

	// AddEventListener attaches l to h. Listeners are never detached
	// individually; they go away with their resource.
	AddEventListener(h Handle, name string, l Listener) error
}

// Errors returned by Document implementations.
var (
	ErrUnknownHandle = errors.New("dom: unknown handle")
	ErrNotElement    = errors.New("dom: handle is not an element")
	ErrNotChild      = errors.New("dom: node is not a child of parent")
)
