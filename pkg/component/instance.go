package component

import (
	"reflect"
	"sync/atomic"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/node"
)

// Instance is a live component with its message and event types erased.
// Instances are created by Prefab.Assemble and driven by the Env.
type Instance interface {
	TypeTag() reflect.Type
	IndexID() (string, bool)

	// Ref returns the arena slot of the instance.
	Ref() Ref

	// Post delivers a message and resolves the resulting command
	// immediately. Messages of the wrong type are dropped.
	Post(msg any)

	// LazyUpdate delivers a message drained from a child and queues the
	// resulting command for this instance's own parent.
	LazyUpdate(msg any)

	OnAssemble()
	OnLoad()

	// LoadLazyCmd drains queued lifecycle commands in order, stopping at the
	// first one that yields a message for the demiroot.
	LoadLazyCmd() (any, bool)

	// Render renders the component with children and assembles its child
	// components.
	Render(children []Html) []*node.Node

	SetDemiroot(ref Ref)

	// Dirty reports whether state changed since the last Render.
	Dirty() bool

	attach(env *Env, self Ref)
	release()
}

// lazyCmd is one entry of the lifecycle FIFO. A resolved entry already
// carries a message for the demiroot.
type lazyCmd[M, S, DM any] struct {
	cmd      Cmd[M, S]
	msg      DM
	resolved bool
}

type instance[M, S any, C Component[P, M, S], P, DM any] struct {
	env      *Env
	self     Ref
	demiroot Ref

	state  C
	props  P
	mapper Mapper[S, DM]

	index    string
	hasIndex bool

	dirty bool
	busy  bool
	inbox []M
	lazy  []lazyCmd[M, S, DM]
	tree  *tree
}

func newInstance[M, S any, C Component[P, M, S], P, DM any](state C, props P, mapper Mapper[S, DM], index string, hasIndex bool) *instance[M, S, C, P, DM] {
	return &instance[M, S, C, P, DM]{
		state:    state,
		props:    props,
		mapper:   mapper,
		index:    index,
		hasIndex: hasIndex,
		dirty:    true,
	}
}

func (i *instance[M, S, C, P, DM]) TypeTag() reflect.Type {
	return reflect.TypeFor[C]()
}

func (i *instance[M, S, C, P, DM]) IndexID() (string, bool) {
	return i.index, i.hasIndex
}

func (i *instance[M, S, C, P, DM]) Ref() Ref { return i.self }

func (i *instance[M, S, C, P, DM]) Dirty() bool { return i.dirty }

func (i *instance[M, S, C, P, DM]) sameIndex(index string, hasIndex bool) bool {
	return i.hasIndex == hasIndex && i.index == index
}

// SetProps replaces the props. Queued lifecycle commands and child
// instances are kept.
func (i *instance[M, S, C, P, DM]) SetProps(props P) {
	i.props = props
}

// SetSubMapper replaces the mapper.
func (i *instance[M, S, C, P, DM]) SetSubMapper(mapper Mapper[S, DM]) {
	i.mapper = mapper
}

func (i *instance[M, S, C, P, DM]) SetDemiroot(ref Ref) {
	i.demiroot = ref
}

func (i *instance[M, S, C, P, DM]) attach(env *Env, self Ref) {
	i.env = env
	i.self = self
}

func (i *instance[M, S, C, P, DM]) release() {
	if i.tree != nil {
		i.tree.each(i.env.release)
		i.tree = nil
	}
	i.inbox = nil
	i.lazy = nil
}

func (i *instance[M, S, C, P, DM]) Post(msg any) {
	m, ok := i.cast(msg)
	if !ok {
		return
	}
	if i.busy {
		i.inbox = append(i.inbox, m)
		return
	}
	i.forceUpdate(m)
	i.drainInbox()
}

func (i *instance[M, S, C, P, DM]) LazyUpdate(msg any) {
	m, ok := i.cast(msg)
	if !ok {
		return
	}
	i.busy = true
	cmd := i.state.Update(i.props, m)
	i.busy = false
	i.dirty = true
	i.lazy = append(i.lazy, lazyCmd[M, S, DM]{cmd: cmd})
	i.env.requestRender()
	i.drainInbox()
}

func (i *instance[M, S, C, P, DM]) OnAssemble() {
	var cmd Cmd[M, S]
	if a, ok := any(i.state).(Assembler[P, M, S]); ok {
		i.busy = true
		cmd = a.OnAssemble(i.props)
		i.busy = false
	}
	i.dirty = true
	i.lazy = append(i.lazy, lazyCmd[M, S, DM]{cmd: cmd})
}

func (i *instance[M, S, C, P, DM]) OnLoad() {
	var cmd Cmd[M, S]
	if l, ok := any(i.state).(Loader[P, M, S]); ok {
		i.busy = true
		cmd = l.OnLoad(i.props)
		i.busy = false
	}
	i.dirty = true
	i.lazy = append(i.lazy, lazyCmd[M, S, DM]{cmd: cmd})
}

func (i *instance[M, S, C, P, DM]) LoadLazyCmd() (any, bool) {
	for len(i.lazy) > 0 {
		next := i.lazy[0]
		i.lazy[0] = lazyCmd[M, S, DM]{}
		i.lazy = i.lazy[1:]

		if next.resolved {
			return next.msg, true
		}

		subs := i.loadCmd(next.cmd, true)
		for k, sub := range subs {
			msg, ok := i.mapSub(sub)
			if !ok {
				continue
			}
			if rest := subs[k+1:]; len(rest) > 0 {
				front := make([]lazyCmd[M, S, DM], 0, len(rest)+len(i.lazy))
				for _, s := range rest {
					front = append(front, lazyCmd[M, S, DM]{cmd: Sub[M](s)})
				}
				i.lazy = append(front, i.lazy...)
			}
			return msg, true
		}
	}
	return nil, false
}

func (i *instance[M, S, C, P, DM]) Render(children []Html) []*node.Node {
	i.busy = true
	out := i.state.Render(i.props, children)
	i.busy = false
	i.dirty = false

	old := i.tree
	nodes, t := i.env.convert(out, old, i.self)
	i.env.releaseUnused(old, t)
	i.tree = t

	if len(i.inbox) > 0 {
		i.drainInbox()
		i.env.requestRender()
	}
	return nodes
}

func (i *instance[M, S, C, P, DM]) forceUpdate(m M) {
	i.busy = true
	cmd := i.state.Update(i.props, m)
	i.busy = false
	i.dirty = true
	i.loadCmd(cmd, false)
}

func (i *instance[M, S, C, P, DM]) drainInbox() {
	for len(i.inbox) > 0 && !i.busy {
		m := i.inbox[0]
		i.inbox = i.inbox[1:]
		i.forceUpdate(m)
	}
}

// loadCmd resolves cmd. Subs are sent to the demiroot, or returned when
// lazy is set.
func (i *instance[M, S, C, P, DM]) loadCmd(cmd Cmd[M, S], lazy bool) []S {
	switch cmd.kind {
	case cmdSub:
		if lazy {
			return []S{cmd.sub}
		}
		i.sendSub(cmd.sub)
	case cmdTask:
		i.schedule(cmd.deferred, true)
	case cmdBatch:
		i.schedule(cmd.deferred, false)
	case cmdList:
		var subs []S
		for _, c := range cmd.list {
			subs = append(subs, i.loadCmd(c, lazy)...)
		}
		return subs
	}
	return nil
}

func (i *instance[M, S, C, P, DM]) mapSub(sub S) (DM, bool) {
	if i.mapper == nil {
		var zero DM
		return zero, false
	}
	return i.mapper(sub)
}

// sendSub maps sub and posts it to the demiroot. A mapped message with no
// reachable demiroot waits in the lifecycle FIFO for the parent to drain it.
func (i *instance[M, S, C, P, DM]) sendSub(sub S) {
	msg, ok := i.mapSub(sub)
	if !ok {
		return
	}
	if parent, ok := i.env.arena.Get(i.demiroot); ok {
		parent.Post(msg)
		return
	}
	i.lazy = append(i.lazy, lazyCmd[M, S, DM]{msg: msg, resolved: true})
}

// schedule hands fn to the scheduler with a resolver that hops back onto
// the scheduler before touching the instance.
func (i *instance[M, S, C, P, DM]) schedule(fn func(resolve func(M)), once bool) {
	env, self := i.env, i.self
	var fired atomic.Bool

	resolve := func(m M) {
		if once && !fired.CompareAndSwap(false, true) {
			return
		}
		env.sched.Schedule(func() {
			env.deliver(self, m)
		})
	}
	env.sched.Schedule(func() {
		fn(resolve)
	})
}

func (i *instance[M, S, C, P, DM]) cast(msg any) (M, bool) {
	m, ok := msg.(M)
	if !ok {
		i.env.logger.Debug("message dropped",
			"error", errors.New("E001").
				With("component", reflect.TypeFor[C]()).
				With("message", reflect.TypeOf(msg)))
	}
	return m, ok
}
