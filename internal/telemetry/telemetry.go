// Package telemetry wires the verifier CLI's optional observability:
// a trace span per proof line validated, and counters for valid/invalid
// outcomes, exported to stdout. It is deliberately stdout-only — no
// live collector endpoint is required to exercise it.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/arborist/ndverify/cmd/ndv"

// Handle bundles the tracer/meter a verify run instruments itself with,
// plus the instruments recording line outcomes.
type Handle struct {
	Tracer trace.Tracer

	validCount   metric.Int64Counter
	invalidCount metric.Int64Counter

	shutdown func(context.Context) error
}

// Setup configures real stdout-exporting providers when enabled is
// true; otherwise it returns a Handle backed by otel's global no-op
// providers, so instrumentation call sites never need to branch.
func Setup(ctx context.Context, enabled bool) (*Handle, error) {
	if !enabled {
		return newHandle(ctx, otel.Tracer(instrumentationName), otel.Meter(instrumentationName), func(context.Context) error { return nil })
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: building trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))

	metricExporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: building metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))

	shutdown := func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
		return mp.Shutdown(ctx)
	}

	return newHandle(ctx, tp.Tracer(instrumentationName), mp.Meter(instrumentationName), shutdown)
}

func newHandle(ctx context.Context, tracer trace.Tracer, meter metric.Meter, shutdown func(context.Context) error) (*Handle, error) {
	validCount, err := meter.Int64Counter("ndv.lines.valid", metric.WithDescription("proof lines that validated"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: building valid-line counter: %w", err)
	}
	invalidCount, err := meter.Int64Counter("ndv.lines.invalid", metric.WithDescription("proof lines that failed validation"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: building invalid-line counter: %w", err)
	}
	return &Handle{Tracer: tracer, validCount: validCount, invalidCount: invalidCount, shutdown: shutdown}, nil
}

// RecordLine starts and immediately ends a span for one line's
// validation, and increments the matching valid/invalid counter.
func (h *Handle) RecordLine(ctx context.Context, label, symbol string, valid bool) {
	_, span := h.Tracer.Start(ctx, "verify.line")
	span.SetAttributes(
		attribute.String("ndv.line.label", label),
		attribute.String("ndv.line.rule", symbol),
		attribute.Bool("ndv.line.valid", valid),
	)
	span.End()

	if valid {
		h.validCount.Add(ctx, 1)
	} else {
		h.invalidCount.Add(ctx, 1)
	}
}

// Shutdown flushes and releases any real exporters configured by Setup.
func (h *Handle) Shutdown(ctx context.Context) error {
	return h.shutdown(ctx)
}
