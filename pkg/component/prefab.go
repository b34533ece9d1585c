package component

import "reflect"

// Prefab describes how to construct or refresh one component at one tree
// position. Reuse is keyed on (TypeTag, IndexID).
type Prefab interface {
	// TypeTag is the Go type of the packed component.
	TypeTag() reflect.Type

	// IndexID returns the optional index id.
	IndexID() (string, bool)

	// Assemble reuses existing when it holds the same component type and
	// index id, overwriting its props and mapper. Otherwise it constructs a
	// fresh instance. The bool reports reuse.
	Assemble(existing Instance) (Instance, bool)

	// Children returns the Html handed to the component's Render.
	Children() []Html
}

// Option configures a packed component.
type Option func(*packOptions)

type packOptions struct {
	index    string
	hasIndex bool
	children []Html
}

// WithIndex sets the index id. Two prefabs of the same component type at the
// same position only share an instance when their index ids match.
func WithIndex(id string) Option {
	return func(o *packOptions) {
		o.index = id
		o.hasIndex = true
	}
}

// WithChildren passes children to the component's Render. They stay bound to
// the component that wrote them: their handlers post to it and their nested
// components report to it.
func WithChildren(children ...Html) Option {
	return func(o *packOptions) {
		o.children = append(o.children, children...)
	}
}

type packed[M, S any, C Component[P, M, S], P, DM any] struct {
	ctor   func(P) C
	props  P
	mapper Mapper[S, DM]
	opts   packOptions
}

// Pack describes component C constructed by ctor with props, reporting to
// its parent through mapper. M and S are given explicitly; the rest are
// inferred:
//
//	component.Pack[counter.Msg, counter.Event](counter.New, counter.Props{}, mapCounter)
func Pack[M, S any, C Component[P, M, S], P, DM any](ctor func(P) C, props P, mapper Mapper[S, DM], opts ...Option) Prefab {
	p := &packed[M, S, C, P, DM]{
		ctor:   ctor,
		props:  props,
		mapper: mapper,
	}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// Root packs a top-level component. Its events have nowhere to go and are
// dropped.
func Root[M, S any, C Component[P, M, S], P any](ctor func(P) C, props P, opts ...Option) Prefab {
	return Pack[M, S, C, P, struct{}](ctor, props, nil, opts...)
}

func (p *packed[M, S, C, P, DM]) TypeTag() reflect.Type {
	return reflect.TypeFor[C]()
}

func (p *packed[M, S, C, P, DM]) IndexID() (string, bool) {
	return p.opts.index, p.opts.hasIndex
}

func (p *packed[M, S, C, P, DM]) Children() []Html {
	return p.opts.children
}

func (p *packed[M, S, C, P, DM]) Assemble(existing Instance) (Instance, bool) {
	if prev, ok := existing.(*instance[M, S, C, P, DM]); ok && prev.sameIndex(p.opts.index, p.opts.hasIndex) {
		prev.SetProps(p.props)
		prev.SetSubMapper(p.mapper)
		return prev, true
	}
	return newInstance[M, S, C, P, DM](p.ctor(p.props), p.props, p.mapper, p.opts.index, p.opts.hasIndex), false
}
