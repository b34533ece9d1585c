package html

import (
	"testing"

	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom"
)

type msg string

func TestCreateElementArgs(t *testing.T) {
	var nothing []Attr
	h := Div(
		nil,
		ID("main"),
		Class("a", "", "b"),
		Class("c"),
		nothing,
		OnClick(msg("go")),
		"hello",
		Span("x"),
		[]component.Html{P("1"), Nothing(), P("2")},
	)

	if h.Kind() != component.HtmlElement || h.Tag() != "div" {
		t.Fatalf("Kind/Tag = %v/%q, want Element/div", h.Kind(), h.Tag())
	}
	if got := h.Attrs().Serialized("id"); got != "main" {
		t.Errorf("id = %q, want main", got)
	}
	if got := h.Attrs().Serialized("class"); got != "a b c" {
		t.Errorf("class = %q, want %q", got, "a b c")
	}
	if got := len(h.Children()); got != 4 {
		t.Errorf("len(Children) = %d, want 4", got)
	}
	if got := h.Children()[0].TextContent(); got != "hello" {
		t.Errorf("first child = %q, want hello", got)
	}
	if got := len(h.Handlers()); got != 1 {
		t.Fatalf("len(Handlers) = %d, want 1", got)
	}
	if got := h.Handlers()[0].Fn(dom.Event{}); got != msg("go") {
		t.Errorf("handler message = %v, want go", got)
	}
}

func TestVoidElementDropsChildren(t *testing.T) {
	h := Input(Type("text"), "ignored")
	if got := len(h.Children()); got != 0 {
		t.Errorf("len(Children) = %d, want 0", got)
	}
	if !IsVoidElement("br") || IsVoidElement("div") {
		t.Error("IsVoidElement misclassifies br/div")
	}
}

func TestBooleanAttributes(t *testing.T) {
	h := Button(Disabled(), DisabledIf(false), CheckedIf(false))
	attrs := h.Attrs()
	if !attrs.Has("disabled") {
		t.Error("disabled missing")
	}
	if got := attrs.Serialized("disabled"); got != "" {
		t.Errorf("disabled = %q, want empty", got)
	}
	if attrs.Has("checked") {
		t.Error("checked present with CheckedIf(false)")
	}
}

func TestStyleDelimiter(t *testing.T) {
	h := Div(Style("color:red", "margin:0"))
	if got := h.Attrs().Serialized("style"); got != "color:red;margin:0" {
		t.Errorf("style = %q", got)
	}
	if got := h.Attrs().Delimiter("style"); got != ";" {
		t.Errorf("Delimiter = %q, want ;", got)
	}
}

func TestInputHandlers(t *testing.T) {
	in := OnInput(func(v string) msg { return msg("typed:" + v) })
	if in.Name != "input" {
		t.Errorf("Name = %q, want input", in.Name)
	}
	if got := in.Fn(dom.Event{Value: "abc"}); got != msg("typed:abc") {
		t.Errorf("message = %v", got)
	}

	kd := OnKeyDown(func(k string) msg { return msg(k) })
	if got := kd.Fn(dom.Event{Detail: map[string]string{"key": "Enter"}}); got != msg("Enter") {
		t.Errorf("keydown message = %v", got)
	}
}

func TestHelpers(t *testing.T) {
	if If(false, Text("x")).Kind() != component.HtmlNone {
		t.Error("If(false) rendered something")
	}
	if IfElse(false, Text("a"), Text("b")).TextContent() != "b" {
		t.Error("IfElse(false) did not pick the second branch")
	}
	called := false
	When(false, func() component.Html { called = true; return Text("x") })
	if called {
		t.Error("When(false) evaluated its body")
	}

	items := Range([]string{"a", "b"}, func(s string, i int) component.Html {
		return Li(Textf("%d:%s", i, s))
	})
	if len(items) != 2 || items[1].Children()[0].TextContent() != "1:b" {
		t.Errorf("Range produced %v", items)
	}

	f := Fragment("a", Nothing(), Text("b"))
	if f.Kind() != component.HtmlFragment || len(f.Children()) != 2 {
		t.Errorf("Fragment = %v with %d children", f.Kind(), len(f.Children()))
	}
}
