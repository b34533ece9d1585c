package component

import (
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/node"
)

// tree mirrors the shape of an instance's last rendered Html so child
// instances can be matched by position on the next pass. Only positions
// holding a prefab carry a Ref.
type tree struct {
	ref   Ref
	items []*tree
}

func (t *tree) item(idx int) *tree {
	if t == nil || idx >= len(t.items) {
		return nil
	}
	return t.items[idx]
}

func (t *tree) oldRef() Ref {
	if t == nil {
		return Ref{}
	}
	return t.ref
}

// each calls fn for every Ref in t.
func (t *tree) each(fn func(Ref)) {
	if t == nil {
		return
	}
	if t.ref.Valid() {
		fn(t.ref)
	}
	for _, c := range t.items {
		c.each(fn)
	}
}

// convert turns h into nodes on behalf of owner, assembling any prefabs
// against the instances recorded at the same positions of old.
func (e *Env) convert(h Html, old *tree, owner Ref) ([]*node.Node, *tree) {
	switch h.kind {
	case HtmlText:
		return []*node.Node{node.NewText(h.text, node.Events{})}, nil

	case HtmlElement:
		n := node.NewElement(h.tag, h.attrs, node.Events{})
		for _, hd := range h.handlers {
			n.Events.On(hd.Name, e.handler(owner, hd.Fn))
		}
		children, t := e.convertList(h.children, old, owner)
		n.Children = children
		return []*node.Node{n}, t

	case HtmlFragment:
		return e.convertList(h.children, old, owner)

	case HtmlSlot:
		return e.convertList(h.children, old, h.owner)

	case HtmlPrefab:
		return e.assemble(h.prefab, old.oldRef(), owner)
	}
	return nil, nil
}

func (e *Env) convertList(list []Html, old *tree, owner Ref) ([]*node.Node, *tree) {
	if len(list) == 0 {
		return nil, nil
	}
	var nodes []*node.Node
	t := &tree{items: make([]*tree, len(list))}
	for idx, h := range list {
		out, sub := e.convert(h, old.item(idx), owner)
		nodes = append(nodes, out...)
		t.items[idx] = sub
	}
	return nodes, t
}

// assemble places p where prev used to be, renders it and drains its
// lifecycle commands into owner.
func (e *Env) assemble(p Prefab, prev Ref, owner Ref) ([]*node.Node, *tree) {
	existing, _ := e.arena.Get(prev)

	inst, reused := p.Assemble(existing)
	ref := prev
	if !reused {
		ref = e.arena.Insert(inst)
		inst.attach(e, ref)
		e.stats.Created++
	}

	inst.SetDemiroot(owner)
	if reused {
		inst.OnLoad()
	} else {
		inst.OnAssemble()
	}

	if inst.Dirty() {
		e.stats.Dirty++
	}
	e.stats.Rendered++
	nodes := inst.Render(bindAll(p.Children(), owner))

	for {
		msg, ok := inst.LoadLazyCmd()
		if !ok {
			break
		}
		if parent, ok := e.arena.Get(owner); ok {
			parent.LazyUpdate(msg)
		}
	}

	return nodes, &tree{ref: ref}
}

// releaseUnused releases every instance referenced by old but not by next.
func (e *Env) releaseUnused(old, next *tree) {
	if old == nil {
		return
	}
	keep := make(map[Ref]bool)
	next.each(func(r Ref) { keep[r] = true })
	old.each(func(r Ref) {
		if !keep[r] {
			e.release(r)
		}
	})
}

func (e *Env) handler(owner Ref, fn func(dom.Event) any) func(dom.Event) {
	if fn == nil {
		return nil
	}
	return func(ev dom.Event) {
		msg := fn(ev)
		if msg == nil {
			return
		}
		e.deliver(owner, msg)
	}
}
