package node

import "github.com/vango-dev/retain/pkg/dom"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <div>, <button>, etc.
	KindText                // Plain text node
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is one unit of declarative output.
type Node struct {
	Kind     Kind
	Tag      string     // Element tag name (e.g., "div")
	Attrs    Attributes // Element attributes
	Events   Events     // Event handler slots
	Children []*Node    // Element children
	Text     string     // Text content

	// Handle is the live resource this node was committed to. Set by the
	// reconciler; zero on freshly rendered nodes.
	Handle dom.Handle
}

// NewElement creates an element node.
func NewElement(tag string, attrs Attributes, events Events, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Events:   events,
		Children: children,
	}
}

// NewText creates a text node.
func NewText(content string, events Events) *Node {
	return &Node{
		Kind:   KindText,
		Text:   content,
		Events: events,
	}
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == KindText
}

// Walk calls fn for n and every descendant in document order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// WalkList calls Walk for every node in list.
func WalkList(list []*Node, fn func(*Node)) {
	for _, n := range list {
		Walk(n, fn)
	}
}
