package node

import (
	"slices"
	"testing"

	"github.com/vango-dev/retain/pkg/dom"
)

func TestAttributes(t *testing.T) {
	var a Attributes
	a.Add("class", "btn")
	a.Add("class", "primary")
	a.Delimit("class", " ")
	a.Declare("disabled")
	a.Add("id", "save")

	if got := a.Serialized("class"); got != "btn primary" {
		t.Errorf("Serialized(class) = %q, want %q", got, "btn primary")
	}
	if got := a.Serialized("disabled"); got != "" || !a.Has("disabled") {
		t.Errorf("disabled = %q (has %v), want declared empty", got, a.Has("disabled"))
	}
	if got, want := a.Names(), []string{"class", "disabled", "id"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
}

func TestSame(t *testing.T) {
	mk := func(delim string, values ...string) Attributes {
		var a Attributes
		for _, v := range values {
			a.Add("style", v)
		}
		if delim != "" {
			a.Delimit("style", delim)
		}
		return a
	}

	tests := []struct {
		name string
		a, b Attributes
		want bool
	}{
		{"equal", mk(";", "a", "b"), mk(";", "a", "b"), true},
		{"order", mk(";", "a", "b"), mk(";", "b", "a"), false},
		{"delimiter", mk(";", "a", "b"), mk(" ", "a", "b"), false},
		{"missing", mk(";", "a"), Attributes{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b, "style"); got != tt.want {
				t.Errorf("Same() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvents(t *testing.T) {
	var e Events
	e.On("click", func(dom.Event) {})
	e.On("click", nil)
	e.PushBound("input", 7)

	if got := len(e.Slots("click")); got != 1 {
		t.Errorf("click slots = %d, want 1", got)
	}
	if s := e.Slot("click", 0); s == nil || s.Bound() {
		t.Errorf("Slot(click, 0) = %+v, want unbound", s)
	}
	if e.Slot("click", 1) != nil {
		t.Error("Slot(click, 1) != nil")
	}
	if got := e.BoundIDs(); !slices.Equal(got, []uint64{7}) {
		t.Errorf("BoundIDs() = %v, want [7]", got)
	}
}

func TestWalk(t *testing.T) {
	tree := NewElement("ul", Attributes{}, Events{},
		NewElement("li", Attributes{}, Events{}, NewText("a", Events{})),
		NewText("b", Events{}),
	)
	var seen []string
	Walk(tree, func(n *Node) {
		if n.IsText() {
			seen = append(seen, n.Text)
		} else {
			seen = append(seen, n.Tag)
		}
	})
	if want := []string{"ul", "li", "a", "b"}; !slices.Equal(seen, want) {
		t.Errorf("Walk order = %v, want %v", seen, want)
	}
	if KindText.String() != "Text" || Kind(9).String() != "Unknown" {
		t.Error("Kind.String() mismatch")
	}
}
