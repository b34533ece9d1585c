// Package remote is a dom.Document whose live resources sit on the far end
// of a connection.
//
// Mutations are applied to a local shadow tree (a memdom.Document) so that
// handles, attributes and listeners can be answered locally, and are queued
// as wire ops. Flush drains the queue into Patches frames after each render
// pass. Events coming back from the client are fired on the shadow tree,
// which runs the listeners the reconciler attached.
package remote

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/dom/memdom"
	"github.com/vango-dev/retain/pkg/protocol"
)

// Document buffers live mutations for a remote client.
type Document struct {
	shadow *memdom.Document
	root   dom.Handle
	logger *slog.Logger

	mu      sync.Mutex
	pending []protocol.Mutation
	seq     uint64
}

var _ dom.Document = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

// New creates a Document whose root element (tag rootTag) already exists
// on the client as the mount point.
func New(rootTag string, opts ...Option) *Document {
	shadow, root := memdom.NewWithRoot(rootTag)
	d := &Document{
		shadow: shadow,
		root:   root,
		logger: slog.Default().With("component", "remote"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the handle of the mount point.
func (d *Document) Root() dom.Handle { return d.root }

// Shadow returns the local mirror of the client tree.
func (d *Document) Shadow() *memdom.Document { return d.shadow }

// Pending returns the number of queued mutations.
func (d *Document) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Seq returns the sequence number of the last flushed pass.
func (d *Document) Seq() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

func (d *Document) queue(err error, m protocol.Mutation) error {
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.pending = append(d.pending, m)
	d.mu.Unlock()
	return nil
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Handle, error) {
	h, err := d.shadow.CreateElement(tag)
	return h, d.queue(err, protocol.Mutation{Op: dom.OpCreateElement, Target: h, Name: tag})
}

// CreateText implements dom.Document.
func (d *Document) CreateText(content string) (dom.Handle, error) {
	h, err := d.shadow.CreateText(content)
	return h, d.queue(err, protocol.Mutation{Op: dom.OpCreateText, Target: h, Value: content})
}

// AppendChild implements dom.Document.
func (d *Document) AppendChild(parent, child dom.Handle) error {
	return d.queue(d.shadow.AppendChild(parent, child),
		protocol.Mutation{Op: dom.OpAppendChild, Target: parent, Child: child})
}

// InsertBefore implements dom.Document.
func (d *Document) InsertBefore(parent, child, ref dom.Handle) error {
	return d.queue(d.shadow.InsertBefore(parent, child, ref),
		protocol.Mutation{Op: dom.OpInsertBefore, Target: parent, Child: child, Old: ref})
}

// ReplaceChild implements dom.Document.
func (d *Document) ReplaceChild(parent, newChild, oldChild dom.Handle) error {
	return d.queue(d.shadow.ReplaceChild(parent, newChild, oldChild),
		protocol.Mutation{Op: dom.OpReplaceChild, Target: parent, Child: newChild, Old: oldChild})
}

// RemoveChild implements dom.Document.
func (d *Document) RemoveChild(parent, child dom.Handle) error {
	return d.queue(d.shadow.RemoveChild(parent, child),
		protocol.Mutation{Op: dom.OpRemoveChild, Target: parent, Child: child})
}

// GetAttribute implements dom.Document.
func (d *Document) GetAttribute(h dom.Handle, name string) (string, bool) {
	return d.shadow.GetAttribute(h, name)
}

// SetAttribute implements dom.Document.
func (d *Document) SetAttribute(h dom.Handle, name, value string) error {
	return d.queue(d.shadow.SetAttribute(h, name, value),
		protocol.Mutation{Op: dom.OpSetAttr, Target: h, Name: name, Value: value})
}

// RemoveAttribute implements dom.Document.
func (d *Document) RemoveAttribute(h dom.Handle, name string) error {
	return d.queue(d.shadow.RemoveAttribute(h, name),
		protocol.Mutation{Op: dom.OpRemoveAttr, Target: h, Name: name})
}

// SetValue implements dom.Document.
func (d *Document) SetValue(h dom.Handle, value string) error {
	return d.queue(d.shadow.SetValue(h, value),
		protocol.Mutation{Op: dom.OpSetValue, Target: h, Value: value})
}

// AddEventListener implements dom.Document. The client is told to forward
// events of that name for h.
func (d *Document) AddEventListener(h dom.Handle, name string, l dom.Listener) error {
	return d.queue(d.shadow.AddEventListener(h, name, l),
		protocol.Mutation{Op: dom.OpListen, Target: h, Name: name})
}

// Flush sends every queued mutation as one pass, split over as many
// Patches frames as needed, and returns how many ops were sent. Nothing is
// sent when the queue is empty. On a send error the remaining frames are
// dropped; the client has to reconnect.
func (d *Document) Flush(send func(*protocol.Frame) error) (int, error) {
	d.mu.Lock()
	ops := d.pending
	d.pending = nil
	if len(ops) == 0 {
		d.mu.Unlock()
		return 0, nil
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	d.shadow.ResetMutations()

	frames, err := protocol.SplitPatches(seq, ops)
	if err != nil {
		return 0, err
	}
	for _, f := range frames {
		if err := send(f); err != nil {
			return 0, err
		}
	}
	d.logger.Debug("patches flushed", "seq", seq, "ops", len(ops), "frames", len(frames))
	return len(ops), nil
}

// HandleEvent fires a client event on the shadow tree and reports how many
// listeners ran. Input events also update the shadow's live value so later
// reads agree with the client.
func (d *Document) HandleEvent(ev *protocol.Event) int {
	if ev.Name == "input" {
		if err := d.shadow.SetValue(ev.Target, ev.Value); err != nil {
			return 0
		}
	}
	fired := d.shadow.Fire(ev.Target, ev.Name, ev.DOM())
	if fired == 0 {
		d.logger.Debug("event without listener", "target", ev.Target, "event", ev.Name)
	}
	return fired
}
