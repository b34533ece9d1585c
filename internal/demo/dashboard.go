package demo

import (
	"github.com/vango-dev/retain/pkg/component"
	h "github.com/vango-dev/retain/pkg/html"
)

// DashboardProps configures the demo page.
type DashboardProps struct {
	Title string
	Todos []string
}

// DashboardMsg is a Dashboard message.
type DashboardMsg interface{ dashboardMsg() }

type (
	counterMoved struct{ value int }
	todosMoved   struct{ remaining int }
)

func (counterMoved) dashboardMsg() {}
func (todosMoved) dashboardMsg()   {}

// Dashboard shows a counter and a todo list and summarises both.
type Dashboard struct {
	count     int
	remaining int
}

// NewDashboard creates a Dashboard.
func NewDashboard(DashboardProps) *Dashboard { return &Dashboard{} }

// Update records what the children reported.
func (d *Dashboard) Update(_ DashboardProps, msg DashboardMsg) component.Cmd[DashboardMsg, struct{}] {
	switch m := msg.(type) {
	case counterMoved:
		d.count = m.value
	case todosMoved:
		d.remaining = m.remaining
	}
	return component.None[DashboardMsg, struct{}]()
}

var (
	fromCounter = component.MapAll(func(e CounterChanged) DashboardMsg { return counterMoved{value: e.Value} })
	fromTodo    = component.MapAll(func(e TodoChanged) DashboardMsg { return todosMoved{remaining: e.Remaining} })
)

// Render lays out both children and the summary line.
func (d *Dashboard) Render(p DashboardProps, _ []component.Html) component.Html {
	return h.Main(h.ID("dashboard"),
		h.H1(p.Title),
		h.P(h.Class("summary"), h.Textf("count %d, %d open", d.count, d.remaining)),
		component.Pack[CounterMsg, CounterChanged](NewCounter, CounterProps{Label: "Clicks"}, fromCounter),
		component.Pack[TodoMsg, TodoChanged](NewTodo, TodoProps{Title: "Todo", Initial: p.Todos}, fromTodo,
			component.WithChildren(h.Small("edited live"))),
	)
}

// Page returns the top-level prefab of the demo.
func Page(title string, todos ...string) component.Prefab {
	return component.Root[DashboardMsg, struct{}](NewDashboard, DashboardProps{Title: title, Todos: todos})
}
