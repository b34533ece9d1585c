// Package rtest provides testing helpers for retain components.
//
// A Harness mounts a prefab into an in-memory document driven by a manual
// scheduler, so a test decides exactly when passes run and can assert on
// the resulting HTML.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := rtest.Mount(t, component.Root[Msg, Event](New, Props{}))
//	    h.ExpectContains(`<span class="count">0</span>`)
//
//	    h.Click("inc")
//	    h.ExpectContains(`<span class="count">1</span>`)
//	}
//
// # Interaction
//
// Click, Type and Fire look elements up by class name and deliver events
// the way a browser would, then settle the tree. Settle runs scheduled
// work until nothing is left or a step limit is reached.
//
// # Assertions
//
//	h.ExpectContains("Welcome")
//	h.ExpectNotContains("Error")
//	h.ExpectElement("button")
//	h.ExpectAttribute("class", "done")
package rtest
