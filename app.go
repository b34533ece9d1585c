package retain

import (
	"log/slog"
	"slices"
	"time"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dispatch"
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/reconcile"
	"github.com/vango-dev/retain/pkg/scheduler"
)

// App drives top-level render passes for one Document.
//
// Every method must be called on the scheduler's goroutine. From other
// goroutines, go through the scheduler:
//
//	loop := scheduler.NewLoop(logger)
//	app := retain.New(doc, loop, retain.DefaultConfig())
//	loop.Schedule(func() { app.Mount(root, counter.Prefab()) })
//	loop.Run(ctx)
type App struct {
	doc      dom.Document
	sched    scheduler.Scheduler
	reg      *dispatch.Registry
	renderer *reconcile.Renderer
	env      *component.Env

	mounts []*mount
	hooks  []func()

	config Config
	logger *slog.Logger

	scheduled bool // a pass is queued on the scheduler
	rendering bool // a pass is running
	pending   bool // a render was requested while rendering
	followUps int
	passes    uint64
}

type mount struct {
	parent dom.Handle
	prefab component.Prefab
	ref    component.Ref
}

// New creates an App rendering into doc. Deferred work and render passes
// run on sched.
func New(doc dom.Document, sched scheduler.Scheduler, cfg Config) *App {
	cfg.applyDefaults()

	a := &App{
		doc:    doc,
		sched:  sched,
		reg:    cfg.Registry,
		config: cfg,
		logger: cfg.Logger.With("component", "app"),
	}
	a.renderer = reconcile.New(doc, a.reg,
		reconcile.WithLogger(cfg.Logger.With("component", "reconcile")))
	a.env = component.NewEnv(sched, a.RequestRender,
		component.WithLogger(cfg.Logger.With("component", "assembly")))
	return a
}

// Mount renders root under parent, replacing whatever was mounted there.
// The first pass is scheduled, not run.
func (a *App) Mount(parent dom.Handle, root component.Prefab) {
	if m := a.mountAt(parent); m != nil {
		m.prefab = root
	} else {
		a.mounts = append(a.mounts, &mount{parent: parent, prefab: root})
	}
	a.RequestRender()
}

// Unmount removes everything rendered under parent and releases its
// component tree.
func (a *App) Unmount(parent dom.Handle) {
	idx := slices.IndexFunc(a.mounts, func(m *mount) bool { return m.parent == parent })
	if idx < 0 {
		return
	}
	m := a.mounts[idx]
	a.mounts = slices.Delete(a.mounts, idx, idx+1)
	a.env.Release(m.ref)
	a.renderer.Unmount(parent)
}

// Send posts msg to the top-level component mounted at parent.
func (a *App) Send(parent dom.Handle, msg any) bool {
	m := a.mountAt(parent)
	if m == nil {
		return false
	}
	return a.env.Post(m.ref, msg)
}

// OnCommit registers fn to run after every pass has been applied to the
// Document.
func (a *App) OnCommit(fn func()) {
	a.hooks = append(a.hooks, fn)
}

// RequestRender schedules a pass. Requests coalesce: at most one pass is
// queued at a time, and a request made while a pass runs schedules one
// follow-up pass after it.
func (a *App) RequestRender() {
	if a.rendering {
		a.pending = true
		return
	}
	a.followUps = 0
	a.schedulePass()
}

// Render runs a pass now unless one is already running.
func (a *App) Render() {
	if a.rendering {
		a.pending = true
		return
	}
	a.pass()
}

// Passes returns the number of completed passes.
func (a *App) Passes() uint64 { return a.passes }

// Live returns the number of live component instances.
func (a *App) Live() int { return a.env.Live() }

// Registry returns the handler dispatch table.
func (a *App) Registry() *dispatch.Registry { return a.reg }

// Document returns the Document the App renders into.
func (a *App) Document() dom.Document { return a.doc }

func (a *App) mountAt(parent dom.Handle) *mount {
	for _, m := range a.mounts {
		if m.parent == parent {
			return m
		}
	}
	return nil
}

func (a *App) schedulePass() {
	if a.scheduled {
		return
	}
	a.scheduled = true
	a.sched.Schedule(func() {
		a.scheduled = false
		a.Render()
	})
}

func (a *App) pass() {
	a.rendering = true
	a.pending = false
	a.passes++

	followUp := a.followUps > 0
	finish := a.config.Observer.PassStarted(a.passes, followUp)
	start := time.Now()

	a.renderer.ResetStats()
	a.env.ResetStats()

	for _, m := range a.mounts {
		ref, nodes := a.env.RenderTop(m.prefab, m.ref)
		m.ref = ref
		a.renderer.Render(nodes, m.parent)
	}

	a.rendering = false

	report := PassReport{
		Pass:       a.passes,
		FollowUp:   followUp,
		Duration:   time.Since(start),
		Mounts:     len(a.mounts),
		Reconcile:  a.renderer.Stats(),
		Components: a.env.Stats(),
		Live:       a.env.Live(),
		Handlers:   a.reg.Len(),
	}
	finish(report)

	a.logger.Debug("pass committed",
		"pass", report.Pass,
		"follow_up", followUp,
		"mutations", report.Reconcile.Mutations(),
		"rendered", report.Components.Rendered,
		"duration", report.Duration)

	for _, hook := range a.hooks {
		hook()
	}

	if !a.pending {
		a.followUps = 0
		return
	}
	a.pending = false

	if a.followUps >= a.config.MaxFollowUpPasses {
		a.logger.Error("follow-up passes cut off",
			"error", errors.New("E003").With("passes", a.followUps))
		a.config.Observer.BudgetExceeded(a.followUps)
		a.followUps = 0
		return
	}
	a.followUps++
	a.schedulePass()
}
