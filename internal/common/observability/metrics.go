package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Observability records how long intake runs take and how they end.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	runCounter    otelmetric.Int64Counter
	runDuration   otelmetric.Float64Histogram
	rowCounter    otelmetric.Int64Counter
}

// New exports through the default prometheus registry, which the worker
// manager serves on /metrics.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	o, err := NewWithReader(serviceName, exporter)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(o.meterProvider)
	return o, nil
}

func NewWithReader(serviceName string, reader metric.Reader) (*Observability, error) {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	provider := metric.NewMeterProvider(metric.WithReader(reader), metric.WithResource(res))
	meter := provider.Meter(serviceName)

	runCounter, err := meter.Int64Counter(
		"intake.runs",
		otelmetric.WithDescription("Intake runs by kind and status"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"intake.run.duration",
		otelmetric.WithDescription("Intake run duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rowCounter, err := meter.Int64Counter(
		"intake.rows",
		otelmetric.WithDescription("Rows touched by intake runs, by kind and outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		runCounter:    runCounter,
		runDuration:   runDuration,
		rowCounter:    rowCounter,
	}, nil
}

// RecordRun is safe on a nil receiver so callers without metrics can pass nil.
func (o *Observability) RecordRun(ctx context.Context, kind, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	)
	o.runCounter.Add(ctx, 1, attrs)
	o.runDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) RecordRows(ctx context.Context, kind, outcome string, n int) {
	if o == nil || n <= 0 {
		return
	}
	o.rowCounter.Add(ctx, int64(n), otelmetric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
