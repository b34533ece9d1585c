package node

import (
	"maps"
	"slices"
	"strings"
)

// Attributes maps attribute names to ordered values plus an optional
// per-name delimiter used to serialise them (class lists, style lists).
type Attributes struct {
	values     map[string][]string
	delimiters map[string]string
}

// NewAttributes creates an empty attribute set.
func NewAttributes() Attributes {
	return Attributes{}
}

// Add appends a value to the named attribute.
func (a *Attributes) Add(name, value string) {
	if a.values == nil {
		a.values = make(map[string][]string)
	}
	a.values[name] = append(a.values[name], value)
}

// Declare makes sure name exists even without values. A declared attribute
// with no values serialises to the empty string (boolean attributes).
func (a *Attributes) Declare(name string) {
	if a.values == nil {
		a.values = make(map[string][]string)
	}
	if _, ok := a.values[name]; !ok {
		a.values[name] = nil
	}
}

// Delimit sets the delimiter used to join the values of name.
func (a *Attributes) Delimit(name, delimiter string) {
	if a.delimiters == nil {
		a.delimiters = make(map[string]string)
	}
	a.delimiters[name] = delimiter
}

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Values returns the raw values of name.
func (a Attributes) Values(name string) []string {
	return a.values[name]
}

// Delimiter returns the delimiter of name ("" when unset).
func (a Attributes) Delimiter(name string) string {
	return a.delimiters[name]
}

// Serialized returns the values of name joined by its delimiter.
func (a Attributes) Serialized(name string) string {
	return strings.Join(a.values[name], a.delimiters[name])
}

// Names returns the attribute names in sorted order.
func (a Attributes) Names() []string {
	return slices.Sorted(maps.Keys(a.values))
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.values)
}

// Same reports whether name has identical (values, delimiter) in a and b.
// A name missing from either side is never the same.
func Same(a, b Attributes, name string) bool {
	av, ok := a.values[name]
	if !ok {
		return false
	}
	bv, ok := b.values[name]
	if !ok {
		return false
	}
	return a.delimiters[name] == b.delimiters[name] && slices.Equal(av, bv)
}
