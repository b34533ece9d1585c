package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is used when NewTracer is given an empty name.
const DefaultTracerName = "retain"

// Tracer starts spans for render passes and client events. It resolves its
// tracer from the global provider, so configure otel.SetTracerProvider
// before creating one.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer named name.
func NewTracer(name string) *Tracer {
	if name == "" {
		name = DefaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

// NewTracerFrom wraps an existing trace.Tracer.
func NewTracerFrom(t trace.Tracer) *Tracer {
	return &Tracer{tracer: t}
}

// StartPass starts a span for one render pass.
func (t *Tracer) StartPass(ctx context.Context, pass uint64, followUp bool) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "retain.pass",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("retain.pass", int64(pass)),
			attribute.Bool("retain.follow_up", followUp),
		))
}

// StartEvent starts a span for a client event delivered to a session.
func (t *Tracer) StartEvent(ctx context.Context, session, name string, target uint64) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "retain.event "+name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("retain.session_id", session),
			attribute.String("retain.event", name),
			attribute.Int64("retain.target", int64(target)),
		))
}

// EndEvent closes an event span, recording err if the event failed.
func EndEvent(span trace.Span, listeners int, err error) {
	span.SetAttributes(attribute.Int("retain.listeners", listeners))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
