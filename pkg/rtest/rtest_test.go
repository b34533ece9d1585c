package rtest_test

import (
	"testing"

	"github.com/vango-dev/retain"
	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/rtest"
)

func TestCounterHarness(t *testing.T) {
	h := rtest.Mount(t, component.Root[demo.CounterMsg, demo.CounterChanged](demo.NewCounter, demo.CounterProps{Step: 2}))
	h.ExpectContains(`<span class="count">0</span>`)
	h.ExpectElement("button")

	h.Click("inc")
	h.Click("inc")
	h.ExpectContains(`<span class="count">4</span>`)

	h.Send(demo.Reset)
	h.ExpectContains(`<span class="count">0</span>`)
}

func TestTodoHarness(t *testing.T) {
	h := rtest.Mount(t, demo.Page("Demo", "milk"))
	h.ExpectNotContains("Loading")
	h.ExpectContains("count 0, 1 open")

	h.Type("draft", "eggs")
	h.Click("add")
	if got := len(h.FindAll("item")); got != 2 {
		t.Fatalf("items = %d, want 2", got)
	}
	if v := h.Must("draft").Value; v != "" {
		t.Errorf("draft value = %q, want empty after Add", v)
	}

	h.Click("toggle")
	h.ExpectAttribute("class", "item done")
	h.ExpectContains("count 0, 1 open")

	h.Click("remove")
	if got := len(h.FindAll("item")); got != 1 {
		t.Errorf("items after remove = %d, want 1", got)
	}
}

func TestFindMissing(t *testing.T) {
	h := rtest.New(t)
	if h.Find("nothing") != nil {
		t.Error("Find on empty document returned a node")
	}
	if h.HTML() != "" {
		t.Errorf("HTML() = %q, want empty", h.HTML())
	}
}

type countingObserver struct{ passes int }

func (o *countingObserver) PassStarted(uint64, bool) func(retain.PassReport) {
	return func(retain.PassReport) { o.passes++ }
}

func (o *countingObserver) BudgetExceeded(int) {}

func TestWithObserver(t *testing.T) {
	obs := &countingObserver{}
	h := rtest.Mount(t, demo.Page("Demo", "milk"), rtest.WithObserver(obs))
	if obs.passes == 0 {
		t.Error("observer saw no passes")
	}
	before := obs.passes
	h.Click("inc")
	if obs.passes <= before {
		t.Errorf("passes = %d after click, want more than %d", obs.passes, before)
	}
}
