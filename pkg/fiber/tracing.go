package fiber

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for engine spans.
const defaultTracerName = "didact"

func defaultTracer() trace.Tracer {
	return otel.Tracer(defaultTracerName)
}

// startPassSpan opens the span covering one pass, from its first unit to
// commit, discard, or failure.
func (e *Engine) startPassSpan(trigger string, seq uint64) (context.Context, trace.Span) {
	return e.tracer.Start(e.baseCtx, "didact.pass",
		trace.WithAttributes(
			attribute.String("didact.trigger", trigger),
			attribute.Int64("didact.pass", int64(seq)),
		),
	)
}

func endPassSpan(span trace.Span, outcome string, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("didact.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func commitAttributes(stats CommitStats) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("didact.units", stats.Units),
		attribute.Int("didact.placements", stats.Placements),
		attribute.Int("didact.updates", stats.Updates),
		attribute.Int("didact.deletions", stats.Deletions),
		attribute.Int("didact.host_ops", stats.HostOps),
		attribute.Int("didact.effects", stats.Effects),
	}
}
