package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan starts an internal span for an engine operation on eventID.
// Uses the global OTel tracer provider.
func StartSpan(ctx context.Context, name string, eventID int64) (context.Context, trace.Span) {
	return otel.Tracer("startlist").Start(ctx, name,
		trace.WithAttributes(attribute.Int64("event.id", eventID)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan completes a span, optionally recording an error.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the recording span in ctx.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
