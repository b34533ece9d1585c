package retain

import (
	"slices"
	"strings"
	"testing"

	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/internal/logging"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/dom/memdom"
	"github.com/vango-dev/retain/pkg/node"
	"github.com/vango-dev/retain/pkg/scheduler"
)

type fixture struct {
	doc  *memdom.Document
	root dom.Handle
	q    *scheduler.Queue
	app  *App
}

func newFixture(cfg Config) *fixture {
	doc, root := memdom.NewWithRoot("body")
	q := scheduler.NewQueue(logging.NewNop())
	cfg.Logger = logging.NewNop()
	return &fixture{doc: doc, root: root, q: q, app: New(doc, q, cfg)}
}

func (f *fixture) find(class string) *memdom.Node {
	var found *memdom.Node
	var walk func(n *memdom.Node)
	walk = func(n *memdom.Node) {
		if found != nil || n == nil {
			return
		}
		if v, ok := n.Attr("class"); ok && slices.Contains(strings.Fields(v), class) {
			found = n
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(f.doc.Node(f.root))
	return found
}

func (f *fixture) click(t *testing.T, class string) {
	t.Helper()
	n := f.find(class)
	if n == nil {
		t.Fatalf("no element with class %q in %s", class, f.html())
	}
	f.doc.Fire(n.Handle, "click", dom.Event{})
	f.q.Flush()
}

func (f *fixture) html() string {
	return f.doc.InnerHTML(f.root)
}

func TestMountRendersOnFlush(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, demo.Page("Demo", "milk", "eggs"))

	if f.html() != "" {
		t.Fatal("Mount rendered synchronously")
	}
	f.q.Flush()

	got := f.html()
	for _, want := range []string{"<h1>Demo</h1>", "count 0, 2 open", "<span>milk</span>", "<span>eggs</span>"} {
		if !strings.Contains(got, want) {
			t.Errorf("html missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Loading") {
		t.Errorf("loading indicator still shown:\n%s", got)
	}
}

func TestEventRoundTrip(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, demo.Page("Demo", "milk"))
	f.q.Flush()

	f.click(t, "inc")
	f.click(t, "inc")

	n := f.find("count")
	if n == nil {
		t.Fatalf("no count element in %s", f.html())
	}
	if got := f.doc.InnerHTML(n.Handle); got != "2" {
		t.Errorf("count = %q, want 2", got)
	}
	if !strings.Contains(f.html(), "count 2, 1 open") {
		t.Errorf("summary not updated:\n%s", f.html())
	}
}

func TestInputAndAdd(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, demo.Page("Demo"))
	f.q.Flush()

	input := f.find("new").Children[0]
	f.doc.Input(input.Handle, "bread")
	f.q.Flush()
	f.click(t, "add")

	if !strings.Contains(f.html(), "<span>bread</span>") {
		t.Fatalf("item not added:\n%s", f.html())
	}
	if got := f.doc.Node(input.Handle).Value; got != "" {
		t.Errorf("input value = %q, want cleared", got)
	}
	if !strings.Contains(f.html(), "count 0, 1 open") {
		t.Errorf("summary = %s", f.html())
	}
}

func TestRerenderWithoutChangeIsQuiet(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, demo.Page("Demo", "a", "b"))
	f.q.Flush()

	live := f.app.Live()
	handlers := f.app.Registry().Len()
	f.doc.ResetMutations()

	f.app.RequestRender()
	f.q.Flush()

	if m := f.doc.Mutations(); len(m) != 0 {
		t.Errorf("idle pass issued mutations: %+v", m)
	}
	if f.app.Live() != live {
		t.Errorf("Live() = %d, want %d", f.app.Live(), live)
	}
	if f.app.Registry().Len() != handlers {
		t.Errorf("handlers = %d, want %d", f.app.Registry().Len(), handlers)
	}
}

func TestRequestsCoalesce(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, demo.Page("Demo"))
	f.app.RequestRender()
	f.app.RequestRender()

	if got := f.q.Len(); got != 1 {
		t.Errorf("queued passes = %d, want 1", got)
	}
}

func TestUnmount(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, demo.Page("Demo", "x"))
	f.q.Flush()

	f.app.Unmount(f.root)

	if f.html() != "" {
		t.Errorf("html after Unmount = %q", f.html())
	}
	if f.app.Live() != 0 {
		t.Errorf("Live() = %d, want 0", f.app.Live())
	}
	if f.app.Registry().Len() != 0 {
		t.Errorf("handlers = %d, want 0", f.app.Registry().Len())
	}
}

type recorder struct {
	reports  []PassReport
	exceeded int
}

func (r *recorder) PassStarted(uint64, bool) func(PassReport) {
	return func(rep PassReport) { r.reports = append(r.reports, rep) }
}

func (r *recorder) BudgetExceeded(int) { r.exceeded++ }

// chatty emits an event to its parent on every load, so its parent keeps
// changing during render and asks for yet another pass.

type chatty struct{}

func newChatty(struct{}) *chatty { return &chatty{} }

func (c *chatty) Update(struct{}, int) component.Cmd[int, int] { return component.Cmd[int, int]{} }

func (c *chatty) Render(struct{}, []component.Html) component.Html { return component.Text("chatty") }

func (c *chatty) OnLoad(struct{}) component.Cmd[int, int] { return component.Sub[int](1) }

func (c *chatty) OnAssemble(struct{}) component.Cmd[int, int] { return component.Sub[int](1) }

type loopHost struct{ n int }

func newLoopHost(struct{}) *loopHost { return &loopHost{} }

func (l *loopHost) Update(_ struct{}, n int) component.Cmd[int, struct{}] {
	l.n += n
	return component.Cmd[int, struct{}]{}
}

func (l *loopHost) Render(struct{}, []component.Html) component.Html {
	return component.Element("div", node.Attributes{}, nil,
		component.Embed(component.Pack[int, int](newChatty, struct{}{}, component.MapAll(func(i int) int { return i }))))
}

func TestFollowUpBudget(t *testing.T) {
	rec := &recorder{}
	f := newFixture(Config{MaxFollowUpPasses: 3, Observer: rec})

	f.app.Mount(f.root, component.Root[int, struct{}](newLoopHost, struct{}{}))
	f.q.Flush()

	if got := len(rec.reports); got != 4 {
		t.Errorf("passes = %d, want 4 (1 + 3 follow-ups)", got)
	}
	if rec.exceeded != 1 {
		t.Errorf("BudgetExceeded calls = %d, want 1", rec.exceeded)
	}
	if !rec.reports[1].FollowUp || rec.reports[0].FollowUp {
		t.Errorf("FollowUp flags = %v, %v", rec.reports[0].FollowUp, rec.reports[1].FollowUp)
	}

	// An external trigger resets the budget.
	f.app.RequestRender()
	f.q.Flush()
	if got := len(rec.reports); got != 8 {
		t.Errorf("passes after external trigger = %d, want 8", got)
	}
}

func TestOnCommitRunsAfterPass(t *testing.T) {
	f := newFixture(DefaultConfig())
	var seen []string
	f.app.OnCommit(func() { seen = append(seen, f.html()) })

	f.app.Mount(f.root, demo.Page("Demo"))
	f.q.Flush()

	if len(seen) == 0 || !strings.Contains(seen[0], "<h1>Demo</h1>") {
		t.Errorf("commit hook saw %v", seen)
	}
	if f.app.Passes() != uint64(len(seen)) {
		t.Errorf("Passes() = %d, hooks = %d", f.app.Passes(), len(seen))
	}
}

func TestSend(t *testing.T) {
	f := newFixture(DefaultConfig())
	f.app.Mount(f.root, component.Root[int, struct{}](newLoopHost, struct{}{}))

	if f.app.Send(dom.Handle(999), 1) {
		t.Error("Send to unknown mount = true")
	}
	f.q.Flush()

	if !f.app.Send(f.root, 1) {
		t.Error("Send to mounted root = false")
	}
}
