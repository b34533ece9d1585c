package reconcile

import (
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/node"
)

// inputLike are elements whose live value property diverges from their
// "value" attribute once edited.
var inputLike = map[string]bool{
	"input":    true,
	"textarea": true,
}

// diffAttributes removes attributes that vanished and rewrites those whose
// serialised (values, delimiter) pair changed.
func (r *Renderer) diffAttributes(before, after node.Attributes, h dom.Handle, tag string) {
	for _, name := range before.Names() {
		if !after.Has(name) {
			r.check(dom.OpRemoveAttr, r.doc.RemoveAttribute(h, name))
			r.stats.AttrsRemoved++
		}
	}

	for _, name := range after.Names() {
		if !node.Same(before, after, name) {
			r.setAttribute(h, tag, name, after)
		}
	}
}

func (r *Renderer) setAttribute(h dom.Handle, tag, name string, attrs node.Attributes) {
	value := ""
	if len(attrs.Values(name)) > 0 {
		value = attrs.Serialized(name)
	}

	r.check(dom.OpSetAttr, r.doc.SetAttribute(h, name, value))
	r.stats.AttrsSet++

	if name == "value" && inputLike[tag] {
		r.check(dom.OpSetValue, r.doc.SetValue(h, value))
		r.stats.ValuesSet++
	}
}
