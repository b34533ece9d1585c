package rtest

import (
	"slices"
	"strings"
	"testing"

	"github.com/vango-dev/retain"
	"github.com/vango-dev/retain/internal/logging"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/dom/memdom"
	"github.com/vango-dev/retain/pkg/scheduler"
)

// MaxSteps bounds the scheduled functions one Settle may run.
const MaxSteps = 10000

// Harness is a mounted tree under test.
type Harness struct {
	T     testing.TB
	Doc   *memdom.Document
	Root  dom.Handle
	Queue *scheduler.Queue
	App   *retain.App
}

// Option configures the App a Harness mounts into.
type Option func(*retain.Config)

// WithConfig replaces the App configuration. The logger is kept silent
// unless cfg sets one.
func WithConfig(cfg retain.Config) Option {
	return func(c *retain.Config) { *c = cfg }
}

// WithObserver sets the pass observer.
func WithObserver(o retain.Observer) Option {
	return func(c *retain.Config) { c.Observer = o }
}

// New creates an empty Harness with nothing mounted.
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	cfg := retain.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	doc, root := memdom.NewWithRoot("body")
	q := scheduler.NewQueue(cfg.Logger)
	return &Harness{T: t, Doc: doc, Root: root, Queue: q, App: retain.New(doc, q, cfg)}
}

// Mount creates a Harness, mounts prefab at its root and settles it.
//
// Example:
//
//	h := rtest.Mount(t, demo.Page("Home"))
//	h.ExpectElement("h1")
func Mount(t testing.TB, prefab component.Prefab, opts ...Option) *Harness {
	t.Helper()
	h := New(t, opts...)
	h.App.Mount(h.Root, prefab)
	h.Settle()
	return h
}

// Settle runs scheduled work until the queue is empty. It fails the test
// if work is still pending after MaxSteps.
func (h *Harness) Settle() int {
	h.T.Helper()
	n := h.Queue.FlushN(MaxSteps)
	if h.Queue.Len() > 0 {
		h.T.Fatalf("tree did not settle after %d steps", n)
	}
	return n
}

// HTML returns the inner HTML of the mount point.
func (h *Harness) HTML() string {
	return h.Doc.InnerHTML(h.Root)
}

// Find returns the first element, in document order, whose class list
// contains class, or nil.
func (h *Harness) Find(class string) *memdom.Node {
	all := h.FindAll(class)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FindAll returns every element whose class list contains class, in
// document order.
func (h *Harness) FindAll(class string) []*memdom.Node {
	var found []*memdom.Node
	var walk func(n *memdom.Node)
	walk = func(n *memdom.Node) {
		if v, ok := n.Attr("class"); ok && slices.Contains(strings.Fields(v), class) {
			found = append(found, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if root := h.Doc.Node(h.Root); root != nil {
		for _, c := range root.Children {
			walk(c)
		}
	}
	return found
}

// Must is Find that fails the test when nothing matches.
func (h *Harness) Must(class string) *memdom.Node {
	h.T.Helper()
	n := h.Find(class)
	if n == nil {
		h.T.Fatalf("no element with class %q in:\n%s", class, truncate(h.HTML(), 500))
	}
	return n
}

// Fire delivers event name to the element with class and settles. It
// returns how many listeners ran.
func (h *Harness) Fire(class, name string) int {
	h.T.Helper()
	n := h.Doc.Fire(h.Must(class).Handle, name, dom.Event{})
	h.Settle()
	return n
}

// Click fires "click" at the element with class.
func (h *Harness) Click(class string) {
	h.T.Helper()
	if h.Fire(class, "click") == 0 {
		h.T.Errorf("click on %q reached no listener", class)
	}
}

// Type sets the value of the input with class and fires "input".
func (h *Harness) Type(class, value string) {
	h.T.Helper()
	if h.Doc.Input(h.Must(class).Handle, value) == 0 {
		h.T.Errorf("input on %q reached no listener", class)
	}
	h.Settle()
}

// Send delivers msg to the root component and settles.
func (h *Harness) Send(msg any) {
	h.T.Helper()
	if !h.App.Send(h.Root, msg) {
		h.T.Errorf("Send(%T) was not delivered", msg)
	}
	h.Settle()
}

// ExpectContains asserts that the rendered HTML contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.T.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.T.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered HTML does not contain
// unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.T.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.T.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the rendered HTML contains a tag.
func (h *Harness) ExpectElement(tag string) {
	h.T.Helper()
	if html := h.HTML(); !strings.Contains(html, "<"+tag) {
		h.T.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that some element carries attr with value.
func (h *Harness) ExpectAttribute(attr, value string) {
	h.T.Helper()
	needle := attr + `="` + value + `"`
	if html := h.HTML(); !strings.Contains(html, needle) {
		h.T.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
