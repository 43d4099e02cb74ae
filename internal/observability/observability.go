package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "gigmarket"

// Tracer starts spans for catalog and marketplace operations.
type Tracer struct {
	tracer trace.Tracer
}

func NewTracer(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(instrumentationName)}
}

// NewGlobalTracer uses whatever provider is registered with otel, a no-op unless an SDK is installed.
func NewGlobalTracer() *Tracer {
	return NewTracer(otel.GetTracerProvider())
}

func NewNoopTracer() *Tracer {
	return NewTracer(tracenoop.NewTracerProvider())
}

func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on the span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Metrics holds the catalog counters.
type Metrics struct {
	seedRuns    metric.Int64Counter
	reseedRuns  metric.Int64Counter
	seededRows  metric.Int64Counter
	cacheLookup metric.Int64Counter
}

func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(instrumentationName)
	m := &Metrics{}

	var err error
	m.seedRuns, err = meter.Int64Counter("catalog.seed.runs",
		metric.WithDescription("Seed-if-empty invocations by outcome"),
		metric.WithUnit("{run}"))
	if err != nil {
		m.seedRuns, _ = meter.Int64Counter("catalog.seed.runs")
	}
	m.reseedRuns, err = meter.Int64Counter("catalog.reseed.runs",
		metric.WithDescription("Force-reseed invocations by outcome"),
		metric.WithUnit("{run}"))
	if err != nil {
		m.reseedRuns, _ = meter.Int64Counter("catalog.reseed.runs")
	}
	m.seededRows, err = meter.Int64Counter("catalog.seeded.rows",
		metric.WithDescription("Rows inserted by seeding"),
		metric.WithUnit("{row}"))
	if err != nil {
		m.seededRows, _ = meter.Int64Counter("catalog.seeded.rows")
	}
	m.cacheLookup, err = meter.Int64Counter("catalog.cache.lookups",
		metric.WithDescription("Catalog cache lookups by result"),
		metric.WithUnit("{lookup}"))
	if err != nil {
		m.cacheLookup, _ = meter.Int64Counter("catalog.cache.lookups")
	}
	return m
}

func NewGlobalMetrics() *Metrics {
	return NewMetrics(otel.GetMeterProvider())
}

func NewNoopMetrics() *Metrics {
	return NewMetrics(metricnoop.NewMeterProvider())
}

// RecordSeed counts one seed-if-empty run; outcome is "seeded", "skipped" or "error".
func (m *Metrics) RecordSeed(ctx context.Context, outcome string, categories, subcategories int) {
	m.seedRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.recordRows(ctx, categories, subcategories)
}

// RecordReseed counts one force-reseed run; outcome is "ok" or "error".
func (m *Metrics) RecordReseed(ctx context.Context, outcome string, categories, subcategories int) {
	m.reseedRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.recordRows(ctx, categories, subcategories)
}

func (m *Metrics) recordRows(ctx context.Context, categories, subcategories int) {
	if categories > 0 {
		m.seededRows.Add(ctx, int64(categories), metric.WithAttributes(attribute.String("table", "categories")))
	}
	if subcategories > 0 {
		m.seededRows.Add(ctx, int64(subcategories), metric.WithAttributes(attribute.String("table", "subcategories")))
	}
}

func (m *Metrics) RecordCacheLookup(ctx context.Context, key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookup.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.key", key),
		attribute.String("result", result),
	))
}
