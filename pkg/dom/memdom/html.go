package memdom

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/vango-dev/retain/pkg/dom"
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
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// InnerHTML serialises the children of h.
func (d *Document) InnerHTML(h dom.Handle) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.nodes[h]
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, c := range n.Children {
		writeNode(&b, c)
	}
	return b.String()
}

// OuterHTML serialises h including its own tag.
func (d *Document) OuterHTML(h dom.Handle) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.nodes[h]
	if !ok {
		return ""
	}
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// WriteHTML streams the children of h to w.
func (d *Document) WriteHTML(w io.Writer, h dom.Handle) error {
	_, err := io.WriteString(w, d.InnerHTML(h))
	return err
}

func writeNode(b *strings.Builder, n *Node) {
	if n.IsText() {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, name := range slices.Sorted(maps.Keys(n.attrs)) {
		b.WriteByte(' ')
		b.WriteString(name)
		if v := n.attrs[name]; v != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(v))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')

	if voidElements[n.Tag] {
		return
	}
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for attribute values. Whitespace that could break
// attribute parsing is escaped as well.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
