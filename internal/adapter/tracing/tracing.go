package tracing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Opts struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

type ShutdownFunc func(context.Context) error

// Setup installs the global propagator and, when an endpoint is set, a
// tracer provider exporting spans over OTLP/HTTP. Without an endpoint the
// global no-op provider stays in place.
func Setup(ctx context.Context, opts Opts) (ShutdownFunc, error) {
	const op = "tracing.Setup"
	log := slog.With("op", op)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if opts.Endpoint == "" {
		log.Info("tracing exporter is disabled")
		return func(context.Context) error { return nil }, nil
	}

	if opts.ServiceName == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("service name is empty"))
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(opts.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exporterOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(opts.Endpoint),
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	log.Info("tracing exporter is enabled", "endpoint", opts.Endpoint)
	return tp.Shutdown, nil
}
