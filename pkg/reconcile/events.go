package reconcile

import (
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/node"
)

// diffEvents moves handler ids from before into after and binds whatever is
// still unbound.
//
// An old id whose position in after holds an unbound closure takes that
// closure, so the listener already attached under the id keeps working.
// Other old ids are deregistered but stay in after as dormant bound slots:
// their listener is still attached to the resource and a later render can
// hand them a closure again. A dormant id counts as released once.
func (r *Renderer) diffEvents(before node.Events, after *node.Events, h dom.Handle) {
	for _, name := range before.Names() {
		for idx, slot := range before.Slots(name) {
			if !slot.Bound() {
				continue
			}
			live := r.reg.Remove(slot.ID)

			if target := after.Slot(name, idx); target != nil && !target.Bound() {
				r.reg.Add(slot.ID, target.Fn)
				target.ID = slot.ID
				target.Fn = nil
				r.stats.HandlersCarried++
				continue
			}
			after.PushBound(name, slot.ID)
			if live {
				r.stats.HandlersReleased++
			}
		}
	}

	for _, name := range after.Names() {
		slots := after.Slots(name)
		for i := range slots {
			if slots[i].Bound() {
				continue
			}
			id := r.reg.GenID()
			r.reg.Add(id, slots[i].Fn)
			slots[i].ID = id
			slots[i].Fn = nil
			r.stats.HandlersBound++

			r.check(dom.OpListen, r.doc.AddEventListener(h, name, r.reg.Trampoline(id)))
			r.stats.Listeners++
		}
	}
}
