package component

type cmdKind uint8

const (
	cmdNone cmdKind = iota
	cmdSub
	cmdTask
	cmdBatch
	cmdList
)

// Cmd is an effect returned by a component with message type M and outbound
// event type S. The zero value is None.
type Cmd[M, S any] struct {
	kind     cmdKind
	sub      S
	deferred func(resolve func(M))
	list     []Cmd[M, S]
}

// None has no effect.
func None[M, S any]() Cmd[M, S] {
	return Cmd[M, S]{}
}

// Sub emits an outbound event to the parent through its mapper.
func Sub[M, S any](event S) Cmd[M, S] {
	return Cmd[M, S]{kind: cmdSub, sub: event}
}

// Task schedules fn. fn may call resolve at most once, from any goroutine,
// to deliver a message back to the component; later calls are ignored.
func Task[M, S any](fn func(resolve func(M))) Cmd[M, S] {
	if fn == nil {
		return Cmd[M, S]{}
	}
	return Cmd[M, S]{kind: cmdTask, deferred: fn}
}

// Batch schedules fn. Unlike Task, resolve may be called any number of
// times, for example once per element of a stream.
func Batch[M, S any](fn func(resolve func(M))) Cmd[M, S] {
	if fn == nil {
		return Cmd[M, S]{}
	}
	return Cmd[M, S]{kind: cmdBatch, deferred: fn}
}

// List resolves cmds in order.
func List[M, S any](cmds ...Cmd[M, S]) Cmd[M, S] {
	if len(cmds) == 0 {
		return Cmd[M, S]{}
	}
	return Cmd[M, S]{kind: cmdList, list: cmds}
}

// IsNone reports whether c has no effect.
func (c Cmd[M, S]) IsNone() bool {
	return c.kind == cmdNone
}
