package component

import (
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/node"
)

// HtmlKind discriminates Html values.
type HtmlKind uint8

const (
	HtmlNone     HtmlKind = iota // renders nothing
	HtmlElement                  // <tag> with attributes, handlers, children
	HtmlText                     // text content
	HtmlFragment                 // children without a wrapping element
	HtmlPrefab                   // a packed child component
	HtmlSlot                     // Html bound to the component that wrote it
)

// String returns the kind name.
func (k HtmlKind) String() string {
	switch k {
	case HtmlNone:
		return "None"
	case HtmlElement:
		return "Element"
	case HtmlText:
		return "Text"
	case HtmlFragment:
		return "Fragment"
	case HtmlPrefab:
		return "Prefab"
	case HtmlSlot:
		return "Slot"
	default:
		return "Unknown"
	}
}

// Handler binds an event name to a function producing a message for the
// component that rendered it. Returning nil posts nothing.
type Handler struct {
	Name string
	Fn   func(dom.Event) any
}

// Html is the declarative output of a component's Render. The zero value
// renders nothing.
type Html struct {
	kind     HtmlKind
	tag      string
	attrs    node.Attributes
	handlers []Handler
	children []Html
	text     string
	prefab   Prefab
	owner    Ref
}

// Element creates an element.
func Element(tag string, attrs node.Attributes, handlers []Handler, children ...Html) Html {
	return Html{
		kind:     HtmlElement,
		tag:      tag,
		attrs:    attrs,
		handlers: handlers,
		children: children,
	}
}

// Text creates a text node.
func Text(content string) Html {
	return Html{kind: HtmlText, text: content}
}

// Fragment groups children without a wrapping element.
func Fragment(children ...Html) Html {
	return Html{kind: HtmlFragment, children: children}
}

// Embed places a packed component.
func Embed(p Prefab) Html {
	if p == nil {
		return Html{}
	}
	return Html{kind: HtmlPrefab, prefab: p}
}

// Empty renders nothing.
func Empty() Html {
	return Html{}
}

// Kind returns the kind of h.
func (h Html) Kind() HtmlKind { return h.kind }

// Tag returns the element tag.
func (h Html) Tag() string { return h.tag }

// Attrs returns the element attributes.
func (h Html) Attrs() node.Attributes { return h.attrs }

// Handlers returns the element event handlers.
func (h Html) Handlers() []Handler { return h.handlers }

// Children returns the children of an element, fragment or slot.
func (h Html) Children() []Html { return h.children }

// TextContent returns the content of a text node.
func (h Html) TextContent() string { return h.text }

// Prefab returns the embedded component of a prefab node.
func (h Html) Prefab() Prefab { return h.prefab }

// bindTo wraps h so it is interpreted on behalf of owner wherever it ends up
// being rendered. Html already bound keeps its original owner.
func bindTo(h Html, owner Ref) Html {
	if h.kind == HtmlSlot || h.kind == HtmlNone {
		return h
	}
	return Html{kind: HtmlSlot, children: []Html{h}, owner: owner}
}

func bindAll(list []Html, owner Ref) []Html {
	if len(list) == 0 {
		return nil
	}
	out := make([]Html, len(list))
	for i, h := range list {
		out[i] = bindTo(h, owner)
	}
	return out
}
