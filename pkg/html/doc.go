// Package html provides builders for component.Html.
//
// Element factories take a variadic list of arguments. Each argument may be:
//
//   - nil (ignored, which allows conditional arguments)
//   - Attr or []Attr
//   - component.Handler or []component.Handler (from On, OnClick, ...)
//   - component.Html or []component.Html
//   - component.Prefab (embedded as a child component)
//   - string (shorthand for a text child)
//
// Example:
//
//	Div(Class("counter"),
//	    Button(OnClick(Decrement{}), "-"),
//	    Span(Textf("%d", c.count)),
//	    Button(OnClick(Increment{}), "+"),
//	)
package html
