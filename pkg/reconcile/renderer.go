package reconcile

import (
	"log/slog"
	"slices"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/dispatch"
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/node"
)

// Renderer reconciles node lists against live parents of one Document.
// A Renderer is not safe for concurrent use; drive it from the scheduler
// goroutine.
type Renderer struct {
	doc     dom.Document
	reg     *dispatch.Registry
	befores map[dom.Handle][]*node.Node
	stats   Stats
	logger  *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for failed live mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Renderer bound to doc and reg.
func New(doc dom.Document, reg *dispatch.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		doc:     doc,
		reg:     reg,
		befores: make(map[dom.Handle][]*node.Node),
		logger:  slog.Default().With("component", "reconcile"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render reconciles afters against the list committed for parent by the
// previous call and returns the new committed list. The returned nodes carry
// live handles and bound handler ids; callers must not render them again.
func (r *Renderer) Render(afters []*node.Node, parent dom.Handle) []*node.Node {
	befores := r.befores[parent]
	committed := r.renderList(befores, afters, parent)
	r.befores[parent] = committed
	return committed
}

// Committed returns the list committed for parent.
func (r *Renderer) Committed(parent dom.Handle) []*node.Node {
	return r.befores[parent]
}

// Unmount removes everything committed under parent and forgets it.
func (r *Renderer) Unmount(parent dom.Handle) {
	r.renderList(r.befores[parent], nil, parent)
	delete(r.befores, parent)
}

// Stats returns the mutation counters accumulated since the last reset.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// ResetStats clears the mutation counters.
func (r *Renderer) ResetStats() {
	r.stats = Stats{}
}

func (r *Renderer) renderList(befores, afters []*node.Node, parent dom.Handle) []*node.Node {
	if slices.Contains(afters, nil) {
		afters = slices.DeleteFunc(slices.Clone(afters), func(n *node.Node) bool { return n == nil })
	}

	committed := make([]*node.Node, 0, len(afters))

	for idx, after := range afters {
		var before *node.Node
		if idx < len(befores) {
			before = befores[idx]
		}

		created, recreate := r.diffNode(before, after)
		if recreate {
			after = r.attach(parent, before, after, created, liveAfter(befores, idx))
		}
		committed = append(committed, after)
	}

	if len(befores) > len(afters) {
		for _, before := range befores[len(afters):] {
			if before.Handle.Valid() {
				r.check(dom.OpRemoveChild, r.doc.RemoveChild(parent, before.Handle))
				r.stats.Removed++
			}
			r.discard(before)
		}
	}

	return committed
}

// liveAfter returns the first live handle among befores past idx. Those
// resources are still attached in order, so inserting before it puts a node
// at position idx.
func liveAfter(befores []*node.Node, idx int) dom.Handle {
	if idx+1 >= len(befores) {
		return 0
	}
	for _, b := range befores[idx+1:] {
		if b.Handle.Valid() {
			return b.Handle
		}
	}
	return 0
}

// attach puts the freshly created resource of after at the position of
// before and returns the node to commit there. A handle is committed only
// once it is attached: if creation or attachment fails, a live before stays
// committed in place and a position without one is committed hollow, so the
// next pass retries against what the Document actually holds.
func (r *Renderer) attach(parent dom.Handle, before, after *node.Node, created, ref dom.Handle) *node.Node {
	hasLive := before != nil && before.Handle.Valid()

	ok := created.Valid()
	switch {
	case !ok:
	case hasLive:
		ok = r.check(dom.OpReplaceChild, r.doc.ReplaceChild(parent, created, before.Handle))
		r.stats.Replaced++
	case ref.Valid():
		ok = r.check(dom.OpInsertBefore, r.doc.InsertBefore(parent, created, ref))
		r.stats.Inserted++
	default:
		ok = r.check(dom.OpAppendChild, r.doc.AppendChild(parent, created))
		r.stats.Appended++
	}

	if !ok {
		r.abandon(after)
		if hasLive {
			return before
		}
	}
	if before != nil {
		r.discard(before)
	}
	return after
}

// abandon releases everything bound inside a subtree that never made it into
// the Document and leaves its root without a handle.
func (r *Renderer) abandon(n *node.Node) {
	r.discard(n)
	n.Handle = 0
	n.Children = nil
	n.Events = node.Events{}
}

// diffNode reconciles one position. It reports whether the position needs a
// new live resource, and the handle of that resource (zero on failure).
func (r *Renderer) diffNode(before, after *node.Node) (dom.Handle, bool) {
	switch after.Kind {
	case node.KindElement:
		if before.IsElement() && before.Tag == after.Tag && before.Handle.Valid() {
			after.Handle = before.Handle
			r.diffAttributes(before.Attrs, after.Attrs, after.Handle, after.Tag)
			r.diffEvents(before.Events, &after.Events, after.Handle)
			after.Children = r.renderList(before.Children, after.Children, after.Handle)
			return 0, false
		}
		return r.forceElement(after), true

	case node.KindText:
		if before.IsText() && before.Text == after.Text && before.Handle.Valid() {
			after.Handle = before.Handle
			r.diffEvents(before.Events, &after.Events, after.Handle)
			return 0, false
		}
		return r.forceText(after), true
	}
	return 0, true
}

func (r *Renderer) forceElement(after *node.Node) dom.Handle {
	h, err := r.doc.CreateElement(after.Tag)
	if err != nil {
		r.check(dom.OpCreateElement, err)
		after.Handle = 0
		after.Children = nil
		return 0
	}
	r.stats.Created++
	after.Handle = h

	for _, name := range after.Attrs.Names() {
		r.setAttribute(h, after.Tag, name, after.Attrs)
	}
	r.diffEvents(node.Events{}, &after.Events, h)
	after.Children = r.renderList(nil, after.Children, h)
	return h
}

func (r *Renderer) forceText(after *node.Node) dom.Handle {
	h, err := r.doc.CreateText(after.Text)
	if err != nil {
		r.check(dom.OpCreateText, err)
		after.Handle = 0
		return 0
	}
	r.stats.Created++
	after.Handle = h
	r.diffEvents(node.Events{}, &after.Events, h)
	return h
}

// discard deregisters every handler bound inside a subtree whose live
// resource is gone.
func (r *Renderer) discard(n *node.Node) {
	node.Walk(n, func(n *node.Node) {
		for _, id := range n.Events.BoundIDs() {
			if r.reg.Remove(id) {
				r.stats.HandlersReleased++
			}
		}
	})
}

// check logs a failed live mutation and reports whether err was nil.
func (r *Renderer) check(op dom.Op, err error) bool {
	if err == nil {
		return true
	}
	r.stats.Failures++
	r.logger.Debug("live mutation failed",
		"op", op.String(),
		"error", errors.New("E010").Wrap(err))
	return false
}
