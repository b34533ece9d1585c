package html

import (
	"fmt"
	"strings"

	"github.com/vango-dev/retain/pkg/node"
)

// Attr is one attribute contribution. Several Attrs with the same name
// accumulate values, joined by Delim.
type Attr struct {
	Name   string
	Values []string
	Delim  string
	// Bool marks a boolean attribute that is present without a value.
	Bool bool
}

func (a Attr) apply(attrs *node.Attributes) {
	if a.Name == "" {
		return
	}
	if a.Bool {
		attrs.Declare(a.Name)
		return
	}
	for _, v := range a.Values {
		attrs.Add(a.Name, v)
	}
	if len(a.Values) == 0 {
		attrs.Declare(a.Name)
	}
	if a.Delim != "" {
		attrs.Delimit(a.Name, a.Delim)
	}
}

func attr(name, value string) Attr {
	return Attr{Name: name, Values: []string{value}}
}

func flag(name string) Attr {
	return Attr{Name: name, Bool: true}
}

// AttrOf sets an arbitrary attribute.
func AttrOf(name string, value any) Attr { return attr(name, fmt.Sprint(value)) }

// ID sets the element id.
func ID(id string) Attr { return attr("id", id) }

// Class adds space-separated classes. Empty names are skipped.
func Class(classes ...string) Attr {
	var values []string
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			values = append(values, c)
		}
	}
	if len(values) == 0 {
		return Attr{}
	}
	return Attr{Name: "class", Values: values, Delim: " "}
}

// ClassIf adds class when cond holds.
func ClassIf(cond bool, class string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(class)
}

// Style adds declarations joined with ";".
func Style(decls ...string) Attr {
	return Attr{Name: "style", Values: decls, Delim: ";"}
}

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

func Href(url string) Attr           { return attr("href", url) }
func Src(url string) Attr            { return attr("src", url) }
func Alt(text string) Attr           { return attr("alt", text) }
func Name(name string) Attr          { return attr("name", name) }
func Value(value string) Attr        { return attr("value", value) }
func Type(t string) Attr             { return attr("type", t) }
func Placeholder(text string) Attr   { return attr("placeholder", text) }
func For(id string) Attr             { return attr("for", id) }
func Role(role string) Attr          { return attr("role", role) }
func AriaLabel(label string) Attr    { return attr("aria-label", label) }
func TitleAttr(title string) Attr    { return attr("title", title) }
func Charset(charset string) Attr    { return attr("charset", charset) }
func TabIndex(index int) Attr        { return attr("tabindex", fmt.Sprint(index)) }
func Autocomplete(value string) Attr { return attr("autocomplete", value) }

// Boolean attributes

func Disabled() Attr  { return flag("disabled") }
func Checked() Attr   { return flag("checked") }
func Selected() Attr  { return flag("selected") }
func Required() Attr  { return flag("required") }
func Readonly() Attr  { return flag("readonly") }
func Autofocus() Attr { return flag("autofocus") }
func Hidden() Attr    { return flag("hidden") }

// DisabledIf sets disabled when cond holds.
func DisabledIf(cond bool) Attr {
	if !cond {
		return Attr{}
	}
	return Disabled()
}

// CheckedIf sets checked when cond holds.
func CheckedIf(cond bool) Attr {
	if !cond {
		return Attr{}
	}
	return Checked()
}
