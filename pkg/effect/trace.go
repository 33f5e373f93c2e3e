package effect

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for effect spans.
const TracerName = "github.com/vango-dev/viewkit/pkg/effect"

// Traced wraps e in a span named name, started from the global tracer
// provider. The span context is visible to e through ctx. Errors are
// recorded on the span and returned unchanged.
func Traced[A any](name string, e Effect[A], attrs ...attribute.KeyValue) Effect[A] {
	return TracedWith(otel.Tracer(TracerName), name, e, attrs...)
}

// TracedWith is Traced with an explicit tracer.
func TracedWith[A any](tracer trace.Tracer, name string, e Effect[A], attrs ...attribute.KeyValue) Effect[A] {
	return func(ctx context.Context) (A, error) {
		ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
		defer span.End()

		a, err := e.Run(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return a, err
		}
		span.SetStatus(codes.Ok, "")
		return a, nil
	}
}
