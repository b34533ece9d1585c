package demo

import (
	"strconv"
	"strings"

	"github.com/vango-dev/retain/pkg/component"
	h "github.com/vango-dev/retain/pkg/html"
)

// TodoProps configures a Todo list. Initial items are loaded
// asynchronously after the list is first assembled.
type TodoProps struct {
	Title   string
	Initial []string
}

// TodoMsg is a Todo message.
type TodoMsg interface{ todoMsg() }

type (
	// Draft updates the text of the new-item input.
	Draft struct{ Text string }
	// Add appends the draft as a new item.
	Add struct{}
	// Toggle flips an item's done flag.
	Toggle struct{ ID int }
	// Remove deletes an item.
	Remove struct{ ID int }
	// Loaded delivers the initial items.
	Loaded struct{ Items []string }
)

func (Draft) todoMsg()  {}
func (Add) todoMsg()    {}
func (Toggle) todoMsg() {}
func (Remove) todoMsg() {}
func (Loaded) todoMsg() {}

// TodoChanged is emitted whenever the number of open items changes.
type TodoChanged struct {
	Remaining int
}

type todoItem struct {
	id   int
	text string
	done bool
}

// Todo is an editable list of items.
type Todo struct {
	items   []todoItem
	draft   string
	nextID  int
	loading bool
}

// NewTodo creates an empty Todo.
func NewTodo(TodoProps) *Todo {
	return &Todo{loading: true}
}

// Items returns the item texts in order.
func (t *Todo) Items() []string {
	out := make([]string, len(t.items))
	for i, it := range t.items {
		out[i] = it.text
	}
	return out
}

func (t *Todo) remaining() int {
	n := 0
	for _, it := range t.items {
		if !it.done {
			n++
		}
	}
	return n
}

func (t *Todo) add(text string) {
	t.nextID++
	t.items = append(t.items, todoItem{id: t.nextID, text: text})
}

// OnAssemble schedules the initial items from props.
func (t *Todo) OnAssemble(p TodoProps) component.Cmd[TodoMsg, TodoChanged] {
	initial := append([]string(nil), p.Initial...)
	return component.Task[TodoMsg, TodoChanged](func(resolve func(TodoMsg)) {
		resolve(Loaded{Items: initial})
	})
}

// Update applies msg to the list.
func (t *Todo) Update(_ TodoProps, msg TodoMsg) component.Cmd[TodoMsg, TodoChanged] {
	before := t.remaining()

	switch m := msg.(type) {
	case Loaded:
		t.loading = false
		for _, text := range m.Items {
			t.add(text)
		}
	case Draft:
		t.draft = m.Text
	case Add:
		if text := strings.TrimSpace(t.draft); text != "" {
			t.add(text)
		}
		t.draft = ""
	case Toggle:
		for i := range t.items {
			if t.items[i].id == m.ID {
				t.items[i].done = !t.items[i].done
			}
		}
	case Remove:
		for i := range t.items {
			if t.items[i].id == m.ID {
				t.items = append(t.items[:i], t.items[i+1:]...)
				break
			}
		}
	}

	if t.remaining() == before {
		return component.None[TodoMsg, TodoChanged]()
	}
	return component.Sub[TodoMsg](TodoChanged{Remaining: t.remaining()})
}

// Render draws the input, the items and the remaining count.
func (t *Todo) Render(p TodoProps, children []component.Html) component.Html {
	items := h.Range(t.items, func(it todoItem, _ int) component.Html {
		return h.Embed(component.Pack[ItemMsg, ItemEvent](NewItem,
			ItemProps{Text: it.text, Done: it.done},
			itemMapper(it.id),
			component.WithIndex(strconv.Itoa(it.id))))
	})

	return h.Section(h.Class("todo"),
		h.H2(p.Title),
		h.Div(h.Class("new"),
			h.Input(h.Class("draft"), h.Type("text"), h.Placeholder("What needs doing?"), h.Value(t.draft),
				h.OnInput(func(v string) TodoMsg { return Draft{Text: v} })),
			h.Button(h.Class("add"), h.OnClick[TodoMsg](Add{}), "Add"),
		),
		h.If(t.loading, h.P(h.Class("loading"), "Loading…")),
		h.Ul(h.Class("items"), items),
		h.Footer(h.Textf("%d remaining", t.remaining()), children),
	)
}

func itemMapper(id int) component.Mapper[ItemEvent, TodoMsg] {
	return func(e ItemEvent) (TodoMsg, bool) {
		switch e {
		case ItemToggled:
			return Toggle{ID: id}, true
		case ItemRemoved:
			return Remove{ID: id}, true
		}
		return nil, false
	}
}
