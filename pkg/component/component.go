package component

// Component is implemented by user state types. P is the props type, M the
// message type the component updates on, and S the type of events it emits
// to its parent.
type Component[P, M, S any] interface {
	Update(props P, msg M) Cmd[M, S]
	Render(props P, children []Html) Html
}

// Assembler is implemented by components that want a hook when they are
// first placed in the tree.
type Assembler[P, M, S any] interface {
	OnAssemble(props P) Cmd[M, S]
}

// Loader is implemented by components that want a hook every time a render
// pass reuses them.
type Loader[P, M, S any] interface {
	OnLoad(props P) Cmd[M, S]
}

// Mapper translates a child's event into its parent's message type. It
// returns false for events the parent ignores.
type Mapper[S, DM any] func(S) (DM, bool)

// MapAll wraps a total translation function as a Mapper.
func MapAll[S, DM any](fn func(S) DM) Mapper[S, DM] {
	return func(s S) (DM, bool) { return fn(s), true }
}
