package html

import (
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/node"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) component.Html {
	return createElement(tag, args)
}

func createElement(tag string, args []any) component.Html {
	var attrs node.Attributes
	var handlers []component.Handler
	var children []component.Html

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			v.apply(&attrs)

		case []Attr:
			for _, a := range v {
				a.apply(&attrs)
			}

		case component.Handler:
			if v.Fn != nil {
				handlers = append(handlers, v)
			}

		case []component.Handler:
			for _, h := range v {
				if h.Fn != nil {
					handlers = append(handlers, h)
				}
			}

		case component.Html:
			if v.Kind() != component.HtmlNone {
				children = append(children, v)
			}

		case []component.Html:
			for _, c := range v {
				if c.Kind() != component.HtmlNone {
					children = append(children, c)
				}
			}

		case component.Prefab:
			children = append(children, component.Embed(v))

		case string:
			children = append(children, component.Text(v))
		}
	}

	if voidElements[tag] {
		children = nil
	}
	return component.Element(tag, attrs, handlers, children...)
}

// Document structure

func Head(args ...any) component.Html   { return createElement("head", args) }
func Body(args ...any) component.Html   { return createElement("body", args) }
func Title(args ...any) component.Html  { return createElement("title", args) }
func Meta(args ...any) component.Html   { return createElement("meta", args) }
func Link(args ...any) component.Html   { return createElement("link", args) }
func Script(args ...any) component.Html { return createElement("script", args) }

// Sectioning

func Header(args ...any) component.Html  { return createElement("header", args) }
func Footer(args ...any) component.Html  { return createElement("footer", args) }
func Main(args ...any) component.Html    { return createElement("main", args) }
func Nav(args ...any) component.Html     { return createElement("nav", args) }
func Section(args ...any) component.Html { return createElement("section", args) }
func Article(args ...any) component.Html { return createElement("article", args) }
func Aside(args ...any) component.Html   { return createElement("aside", args) }
func H1(args ...any) component.Html      { return createElement("h1", args) }
func H2(args ...any) component.Html      { return createElement("h2", args) }
func H3(args ...any) component.Html      { return createElement("h3", args) }
func H4(args ...any) component.Html      { return createElement("h4", args) }

// Text content

func Div(args ...any) component.Html        { return createElement("div", args) }
func P(args ...any) component.Html          { return createElement("p", args) }
func Span(args ...any) component.Html       { return createElement("span", args) }
func Pre(args ...any) component.Html        { return createElement("pre", args) }
func Blockquote(args ...any) component.Html { return createElement("blockquote", args) }
func Ul(args ...any) component.Html         { return createElement("ul", args) }
func Ol(args ...any) component.Html         { return createElement("ol", args) }
func Li(args ...any) component.Html         { return createElement("li", args) }
func Hr(args ...any) component.Html         { return createElement("hr", args) }
func Br(args ...any) component.Html         { return createElement("br", args) }

// Inline

func A(args ...any) component.Html      { return createElement("a", args) }
func Strong(args ...any) component.Html { return createElement("strong", args) }
func Em(args ...any) component.Html     { return createElement("em", args) }
func Small(args ...any) component.Html  { return createElement("small", args) }
func Code(args ...any) component.Html   { return createElement("code", args) }
func Label(args ...any) component.Html  { return createElement("label", args) }
func Img(args ...any) component.Html    { return createElement("img", args) }

// Forms

func Form(args ...any) component.Html     { return createElement("form", args) }
func Input(args ...any) component.Html    { return createElement("input", args) }
func Textarea(args ...any) component.Html { return createElement("textarea", args) }
func Button(args ...any) component.Html   { return createElement("button", args) }
func Select(args ...any) component.Html   { return createElement("select", args) }
func Option(args ...any) component.Html   { return createElement("option", args) }
func Fieldset(args ...any) component.Html { return createElement("fieldset", args) }

// Tables

func Table(args ...any) component.Html { return createElement("table", args) }
func Thead(args ...any) component.Html { return createElement("thead", args) }
func Tbody(args ...any) component.Html { return createElement("tbody", args) }
func Tr(args ...any) component.Html    { return createElement("tr", args) }
func Th(args ...any) component.Html    { return createElement("th", args) }
func Td(args ...any) component.Html    { return createElement("td", args) }
