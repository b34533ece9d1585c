package html

import (
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom"
)

// On binds fn to the named event. The message fn returns is posted to the
// component that rendered the element.
func On[M any](name string, fn func(dom.Event) M) component.Handler {
	if fn == nil {
		return component.Handler{Name: name}
	}
	return component.Handler{Name: name, Fn: func(ev dom.Event) any { return fn(ev) }}
}

// Send binds the named event to a constant message.
func Send[M any](name string, msg M) component.Handler {
	return On(name, func(dom.Event) M { return msg })
}

// OnClick posts msg on click.
func OnClick[M any](msg M) component.Handler { return Send("click", msg) }

// OnDblClick posts msg on double click.
func OnDblClick[M any](msg M) component.Handler { return Send("dblclick", msg) }

// OnInput posts fn(value) every time the value of an input changes.
func OnInput[M any](fn func(value string) M) component.Handler {
	return On("input", func(ev dom.Event) M { return fn(ev.Value) })
}

// OnChange posts fn(value) when an input's value is committed.
func OnChange[M any](fn func(value string) M) component.Handler {
	return On("change", func(ev dom.Event) M { return fn(ev.Value) })
}

// OnSubmit posts msg when a form is submitted.
func OnSubmit[M any](msg M) component.Handler { return Send("submit", msg) }

// OnKeyDown posts fn(key) on keydown. The key is read from the event's
// "key" detail.
func OnKeyDown[M any](fn func(key string) M) component.Handler {
	return On("keydown", func(ev dom.Event) M { return fn(ev.Detail["key"]) })
}

// OnFocus posts msg when the element gains focus.
func OnFocus[M any](msg M) component.Handler { return Send("focus", msg) }

// OnBlur posts msg when the element loses focus.
func OnBlur[M any](msg M) component.Handler { return Send("blur", msg) }
