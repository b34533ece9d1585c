package html

import (
	"fmt"

	"github.com/vango-dev/retain/pkg/component"
)

// Text creates a text node.
func Text(content string) component.Html {
	return component.Text(content)
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) component.Html {
	return component.Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element. It accepts the same
// child arguments as element factories.
func Fragment(children ...any) component.Html {
	var out []component.Html
	for _, child := range children {
		switch v := child.(type) {
		case component.Html:
			if v.Kind() != component.HtmlNone {
				out = append(out, v)
			}
		case []component.Html:
			out = append(out, v...)
		case component.Prefab:
			out = append(out, component.Embed(v))
		case string:
			out = append(out, component.Text(v))
		}
	}
	return component.Fragment(out...)
}

// Embed places a packed component.
func Embed(p component.Prefab) component.Html {
	return component.Embed(p)
}

// Nothing renders nothing.
func Nothing() component.Html {
	return component.Empty()
}

// If returns h when cond holds.
func If(cond bool, h component.Html) component.Html {
	if cond {
		return h
	}
	return component.Empty()
}

// IfElse returns ifTrue when cond holds and ifFalse otherwise.
func IfElse(cond bool, ifTrue, ifFalse component.Html) component.Html {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// When evaluates fn only when cond holds.
func When(cond bool, fn func() component.Html) component.Html {
	if cond {
		return fn()
	}
	return component.Empty()
}

// Range maps items to Html.
func Range[T any](items []T, fn func(item T, index int) component.Html) []component.Html {
	out := make([]component.Html, 0, len(items))
	for i, item := range items {
		out = append(out, fn(item, i))
	}
	return out
}
