package lavatop

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lavatop-go/pkg/lavatop"

// instruments holds the OpenTelemetry plumbing for one client. With
// the default global providers these are no-ops and cost nothing.
type instruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	tracer   trace.Tracer
}

func newInstruments(mp metric.MeterProvider, tp trace.TracerProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	requests, err := meter.Int64Counter("lavatop.client.requests",
		metric.WithDescription("Requests issued to gate.lava.top"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("lavatop.client.request.duration",
		metric.WithDescription("Request round-trip time"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &instruments{
		requests: requests,
		duration: duration,
		tracer:   tp.Tracer(instrumentationName),
	}, nil
}

func (m *instruments) start(ctx context.Context, op, method string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "lavatop."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.request.method", method)))
}

func (m *instruments) record(ctx context.Context, op string, status int, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Int("http.response.status_code", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)

	if err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
