// Package memdom is an in-memory dom.Document.
//
// It keeps a real node tree, records every mutation it receives, can fire
// events at attached listeners, and serialises subtrees to HTML. The CLI and
// the server use it for server-side rendering; tests use the mutation log to
// assert what the reconciler touched.
package memdom

import (
	"slices"
	"sync"

	"github.com/vango-dev/retain/pkg/dom"
)

// Node is a live resource in a Document.
type Node struct {
	Handle   dom.Handle
	Tag      string // empty for text nodes
	Text     string
	Value    string // live value property of input-like elements
	Parent   *Node
	Children []*Node

	attrs     map[string]string
	listeners map[string][]dom.Listener
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttrCount returns the number of attributes on n.
func (n *Node) AttrCount() int {
	return len(n.attrs)
}

// ListenerCount returns the number of listeners attached for name.
func (n *Node) ListenerCount(name string) int {
	return len(n.listeners[name])
}

// Mutation records one call into the Document.
type Mutation struct {
	Op     dom.Op
	Target dom.Handle
	Other  dom.Handle // child for Append/Insert/Remove, new child for Replace
	Name   string
	Value  string
}

// Document is an in-memory dom.Document. It is safe for concurrent use,
// although the runtime only ever drives it from one goroutine.
type Document struct {
	mu        sync.Mutex
	nodes     map[dom.Handle]*Node
	next      dom.Handle
	mutations []Mutation
	failOn    map[dom.Op]bool
}

var _ dom.Document = (*Document)(nil)

// New creates an empty Document.
func New() *Document {
	return &Document{
		nodes: make(map[dom.Handle]*Node),
	}
}

// NewWithRoot creates a Document and a detached root element to mount into.
func NewWithRoot(tag string) (*Document, dom.Handle) {
	d := New()
	d.mu.Lock()
	root := d.alloc(&Node{Tag: tag})
	d.mu.Unlock()
	return d, root.Handle
}

// FailOn makes every subsequent call of op fail with an error. Used to
// exercise best-effort behaviour.
func (d *Document) FailOn(op dom.Op, fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failOn == nil {
		d.failOn = make(map[dom.Op]bool)
	}
	d.failOn[op] = fail
}

// Node returns the node addressed by h, or nil.
func (d *Document) Node(h dom.Handle) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodes[h]
}

// Mutations returns a copy of the mutation log.
func (d *Document) Mutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Mutation, len(d.mutations))
	copy(out, d.mutations)
	return out
}

// ResetMutations clears the mutation log.
func (d *Document) ResetMutations() {
	d.mu.Lock()
	d.mutations = d.mutations[:0]
	d.mu.Unlock()
}

// CountOps returns how many logged mutations have the given op.
func (d *Document) CountOps(op dom.Op) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, m := range d.mutations {
		if m.Op == op {
			n++
		}
	}
	return n
}

func (d *Document) alloc(n *Node) *Node {
	d.next++
	n.Handle = d.next
	d.nodes[n.Handle] = n
	return n
}

// record logs m and reports whether the call should fail.
func (d *Document) record(m Mutation) bool {
	d.mutations = append(d.mutations, m)
	return d.failOn[m.Op]
}

func (d *Document) element(h dom.Handle) (*Node, error) {
	n, ok := d.nodes[h]
	if !ok {
		return nil, dom.ErrUnknownHandle
	}
	if n.IsText() {
		return nil, dom.ErrNotElement
	}
	return n, nil
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpCreateElement, Name: tag}) {
		return 0, errInjected(dom.OpCreateElement)
	}
	n := d.alloc(&Node{Tag: tag})
	d.mutations[len(d.mutations)-1].Target = n.Handle
	return n.Handle, nil
}

// CreateText implements dom.Document.
func (d *Document) CreateText(content string) (dom.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpCreateText, Value: content}) {
		return 0, errInjected(dom.OpCreateText)
	}
	n := d.alloc(&Node{Text: content})
	d.mutations[len(d.mutations)-1].Target = n.Handle
	return n.Handle, nil
}

// AppendChild implements dom.Document.
func (d *Document) AppendChild(parent, child dom.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpAppendChild, Target: parent, Other: child}) {
		return errInjected(dom.OpAppendChild)
	}
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, ok := d.nodes[child]
	if !ok {
		return dom.ErrUnknownHandle
	}
	detach(c)
	c.Parent = p
	p.Children = append(p.Children, c)
	return nil
}

// InsertBefore implements dom.Document.
func (d *Document) InsertBefore(parent, child, ref dom.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpInsertBefore, Target: parent, Other: child, Value: handleString(ref)}) {
		return errInjected(dom.OpInsertBefore)
	}
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, ok := d.nodes[child]
	if !ok {
		return dom.ErrUnknownHandle
	}
	r, ok := d.nodes[ref]
	if !ok || r.Parent != p || r == c {
		return dom.ErrNotChild
	}
	detach(c)
	idx := indexOf(p.Children, r)
	p.Children = slices.Insert(p.Children, idx, c)
	c.Parent = p
	return nil
}

// ReplaceChild implements dom.Document.
func (d *Document) ReplaceChild(parent, newChild, oldChild dom.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpReplaceChild, Target: parent, Other: newChild, Value: handleString(oldChild)}) {
		return errInjected(dom.OpReplaceChild)
	}
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	nc, ok := d.nodes[newChild]
	if !ok {
		return dom.ErrUnknownHandle
	}
	oc, ok := d.nodes[oldChild]
	if !ok || oc.Parent != p {
		return dom.ErrNotChild
	}
	detach(nc)
	idx := indexOf(p.Children, oc)
	p.Children[idx] = nc
	nc.Parent = p
	oc.Parent = nil
	d.forget(oc)
	return nil
}

// RemoveChild implements dom.Document.
func (d *Document) RemoveChild(parent, child dom.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpRemoveChild, Target: parent, Other: child}) {
		return errInjected(dom.OpRemoveChild)
	}
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, ok := d.nodes[child]
	if !ok || c.Parent != p {
		return dom.ErrNotChild
	}
	detach(c)
	d.forget(c)
	return nil
}

// GetAttribute implements dom.Document.
func (d *Document) GetAttribute(h dom.Handle, name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.nodes[h]
	if !ok {
		return "", false
	}
	return n.Attr(name)
}

// SetAttribute implements dom.Document.
func (d *Document) SetAttribute(h dom.Handle, name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpSetAttr, Target: h, Name: name, Value: value}) {
		return errInjected(dom.OpSetAttr)
	}
	n, err := d.element(h)
	if err != nil {
		return err
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return nil
}

// RemoveAttribute implements dom.Document.
func (d *Document) RemoveAttribute(h dom.Handle, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpRemoveAttr, Target: h, Name: name}) {
		return errInjected(dom.OpRemoveAttr)
	}
	n, err := d.element(h)
	if err != nil {
		return err
	}
	delete(n.attrs, name)
	return nil
}

// SetValue implements dom.Document.
func (d *Document) SetValue(h dom.Handle, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpSetValue, Target: h, Value: value}) {
		return errInjected(dom.OpSetValue)
	}
	n, err := d.element(h)
	if err != nil {
		return err
	}
	n.Value = value
	return nil
}

// AddEventListener implements dom.Document.
func (d *Document) AddEventListener(h dom.Handle, name string, l dom.Listener) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.record(Mutation{Op: dom.OpListen, Target: h, Name: name}) {
		return errInjected(dom.OpListen)
	}
	n, ok := d.nodes[h]
	if !ok {
		return dom.ErrUnknownHandle
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]dom.Listener)
	}
	n.listeners[name] = append(n.listeners[name], l)
	return nil
}

// Fire delivers an event to every listener attached to h for name, as the
// browser would on user interaction. It reports how many listeners ran.
// Listeners run without the document lock held.
func (d *Document) Fire(h dom.Handle, name string, ev dom.Event) int {
	d.mu.Lock()
	n, ok := d.nodes[h]
	var listeners []dom.Listener
	if ok {
		listeners = append(listeners, n.listeners[name]...)
		if ev.Value == "" && !n.IsText() {
			ev.Value = n.Value
		}
	}
	d.mu.Unlock()

	ev.Name = name
	ev.Target = h
	for _, l := range listeners {
		l(ev)
	}
	return len(listeners)
}

// Input simulates the user typing value into an input-like element and
// fires "input".
func (d *Document) Input(h dom.Handle, value string) int {
	d.mu.Lock()
	if n, ok := d.nodes[h]; ok {
		n.Value = value
	}
	d.mu.Unlock()
	return d.Fire(h, "input", dom.Event{Value: value})
}

// forget drops n and its subtree from the handle table.
func (d *Document) forget(n *Node) {
	delete(d.nodes, n.Handle)
	for _, c := range n.Children {
		d.forget(c)
	}
}

func detach(n *Node) {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	if idx := indexOf(p.Children, n); idx >= 0 {
		p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
	}
	n.Parent = nil
}

func indexOf(list []*Node, n *Node) int {
	for i, c := range list {
		if c == n {
			return i
		}
	}
	return -1
}
