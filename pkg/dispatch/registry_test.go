package dispatch

import (
	"testing"

	"github.com/vango-dev/retain/internal/logging"
	"github.com/vango-dev/retain/pkg/dom"
)

func TestGenIDUnique(t *testing.T) {
	a := New(logging.NewNop())
	b := New(logging.NewNop())

	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		for _, r := range []*Registry{a, b} {
			id := r.GenID()
			if id == 0 {
				t.Fatal("GenID returned 0")
			}
			if seen[id] {
				t.Fatalf("GenID returned duplicate %d", id)
			}
			seen[id] = true
		}
	}
}

func TestDispatch(t *testing.T) {
	r := New(logging.NewNop())
	id := r.GenID()

	var got string
	r.Add(id, func(ev dom.Event) { got = ev.Name })

	if !r.Dispatch(id, dom.Event{Name: "click"}) {
		t.Fatal("Dispatch returned false for registered id")
	}
	if got != "click" {
		t.Errorf("got = %q, want click", got)
	}

	if !r.Remove(id) {
		t.Error("Remove of a registered id = false, want true")
	}
	if r.Remove(id) {
		t.Error("second Remove = true, want false")
	}
	if r.Dispatch(id, dom.Event{Name: "click"}) {
		t.Error("Dispatch returned true after Remove")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestTrampolineLooksUpAtFireTime(t *testing.T) {
	r := New(logging.NewNop())
	id := r.GenID()
	listener := r.Trampoline(id)

	calls := 0
	r.Add(id, func(dom.Event) { calls = 1 })
	r.Add(id, func(dom.Event) { calls = 2 })

	listener(dom.Event{Name: "click"})
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (latest closure)", calls)
	}
}
