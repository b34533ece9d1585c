package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/retain"
)

// Observer records every pass of an App. Either field may be nil.
//
// The live_instances and handlers gauges are shared by every App in the
// process, so each Observer adds the change since its previous pass and
// takes its share back out on Close.
type Observer struct {
	ctx     context.Context
	metrics *Metrics
	tracer  *Tracer

	live     int
	handlers int
}

var _ retain.Observer = (*Observer)(nil)

// NewObserver returns an Observer whose pass spans are children of ctx.
func NewObserver(ctx context.Context, m *Metrics, t *Tracer) *Observer {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Observer{ctx: ctx, metrics: m, tracer: t}
}

// PassStarted implements retain.Observer.
func (o *Observer) PassStarted(pass uint64, followUp bool) func(retain.PassReport) {
	var end func(retain.PassReport)
	if o.tracer != nil {
		_, span := o.tracer.StartPass(o.ctx, pass, followUp)
		end = func(r retain.PassReport) {
			span.SetAttributes(
				attribute.Int("retain.mutations", r.Reconcile.Mutations()),
				attribute.Int("retain.rendered", r.Components.Rendered),
				attribute.Int("retain.live", r.Live),
			)
			if r.Reconcile.Failures > 0 {
				span.SetStatus(codes.Error, "live mutations failed")
			}
			span.End()
		}
	}

	return func(r retain.PassReport) {
		if o.metrics != nil {
			o.record(r)
		}
		if end != nil {
			end(r)
		}
	}
}

// BudgetExceeded implements retain.Observer.
func (o *Observer) BudgetExceeded(int) {
	if o.metrics != nil {
		o.metrics.budgetExceeded.Inc()
	}
}

// Close removes this App's contribution from the shared gauges.
func (o *Observer) Close() {
	if o.metrics == nil {
		return
	}
	o.metrics.live.Sub(float64(o.live))
	o.metrics.handlers.Sub(float64(o.handlers))
	o.live, o.handlers = 0, 0
}

func (o *Observer) record(r retain.PassReport) {
	m := o.metrics
	kind := "external"
	if r.FollowUp {
		kind = "follow_up"
	}
	m.passes.WithLabelValues(kind).Inc()
	m.passDuration.Observe(r.Duration.Seconds())
	m.recordMutations(r.Reconcile)
	m.rendered.Add(float64(r.Components.Rendered))
	m.created.Add(float64(r.Components.Created))
	m.released.Add(float64(r.Components.Released))

	m.live.Add(float64(r.Live - o.live))
	m.handlers.Add(float64(r.Handlers - o.handlers))
	o.live, o.handlers = r.Live, r.Handlers
}
