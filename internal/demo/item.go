package demo

import (
	"github.com/vango-dev/retain/pkg/component"
	h "github.com/vango-dev/retain/pkg/html"
)

// ItemProps carries one entry from its Todo list.
type ItemProps struct {
	Text string
	Done bool
}

// ItemMsg is an Item message.
type ItemMsg int

const (
	ItemCheck ItemMsg = iota
	ItemDelete
	ItemHover
)

// ItemEvent is what an Item reports to its list.
type ItemEvent int

const (
	ItemToggled ItemEvent = iota
	ItemRemoved
	ItemHovered
)

// Item is one todo entry. Hover state is local and survives re-renders as
// long as the item keeps its position and id.
type Item struct {
	hovered bool
}

// NewItem creates an Item that is not hovered.
func NewItem(ItemProps) *Item { return &Item{} }

// Update turns clicks into events for the list and toggles hover.
func (it *Item) Update(_ ItemProps, msg ItemMsg) component.Cmd[ItemMsg, ItemEvent] {
	switch msg {
	case ItemCheck:
		return component.Sub[ItemMsg](ItemToggled)
	case ItemDelete:
		return component.Sub[ItemMsg](ItemRemoved)
	case ItemHover:
		it.hovered = !it.hovered
		return component.Sub[ItemMsg](ItemHovered)
	}
	return component.None[ItemMsg, ItemEvent]()
}

// Render draws the entry as a list item.
func (it *Item) Render(p ItemProps, _ []component.Html) component.Html {
	return h.Li(
		h.Class("item"), h.ClassIf(p.Done, "done"), h.ClassIf(it.hovered, "hover"),
		h.Send("mouseenter", ItemHover),
		h.Input(h.Class("toggle"), h.Type("checkbox"), h.CheckedIf(p.Done), h.OnClick(ItemCheck)),
		h.Span(p.Text),
		h.Button(h.Class("remove"), h.OnClick(ItemDelete), "×"),
	)
}
