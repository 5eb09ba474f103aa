package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Exporter string

const (
	ExporterOTLP   Exporter = "otlp"
	ExporterStdout Exporter = "stdout"
	// Spans and metrics are still recorded in process but never exported
	ExporterNone Exporter = "none"
)

const ServiceName = "judgebase-api"

// SetupOTelSDK bootstraps the OpenTelemetry pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func SetupOTelSDK(
	ctx context.Context,
	exporter Exporter,
	version string,
) (func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error

	// shutdown calls cleanup functions registered via shutdownFuncs.
	// The errors from the calls are joined.
	// Each registered cleanup will be invoked once.
	shutdown := func(ctx context.Context) error {
		var er error
		for _, fn := range shutdownFuncs {
			er = errors.Join(er, fn(ctx))
		}
		shutdownFuncs = nil
		return er
	}

	// handleErr calls shutdown for cleanup and makes sure that all errors are returned.
	handleErr := func(inErr error) error {
		return errors.Join(inErr, shutdown(ctx))
	}

	switch exporter {
	case ExporterOTLP, ExporterStdout, ExporterNone:
	default:
		return shutdown, fmt.Errorf("unknown telemetry exporter %q", exporter)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return shutdown, handleErr(err)
	}

	// Set up propagator.
	prop := newPropagator()
	otel.SetTextMapPropagator(prop)

	// Set up trace provider.
	tracerProvider, err := newTracerProvider(ctx, exporter, res)
	if err != nil {
		return shutdown, handleErr(err)
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	// Set up meter provider.
	meterProvider, err := newMeterProvider(ctx, exporter, res)
	if err != nil {
		return shutdown, handleErr(err)
	}
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	// Set up logger provider.
	loggerProvider, err := newLoggerProvider(ctx, exporter, res)
	if err != nil {
		return shutdown, handleErr(err)
	}
	shutdownFuncs = append(shutdownFuncs, loggerProvider.Shutdown)
	global.SetLoggerProvider(loggerProvider)

	return shutdown, nil
}

//nolint:ireturn // no control over otel's propagator interface return.
func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newTracerProvider(
	ctx context.Context,
	exporter Exporter,
	res *resource.Resource,
) (*trace.TracerProvider, error) {
	opts := []trace.TracerProviderOption{
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithResource(res),
	}

	var err error
	var traceExporter trace.SpanExporter
	switch exporter {
	case ExporterOTLP:
		traceExporter, err = otlptracegrpc.New(ctx)
	case ExporterStdout:
		traceExporter, err = stdouttrace.New()
	case ExporterNone:
	}
	if err != nil {
		return nil, err
	}
	if traceExporter != nil {
		opts = append(opts, trace.WithBatcher(traceExporter))
	}

	return trace.NewTracerProvider(opts...), nil
}

func newMeterProvider(
	ctx context.Context,
	exporter Exporter,
	res *resource.Resource,
) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(res)}

	var err error
	var metricExporter metric.Exporter
	switch exporter {
	case ExporterOTLP:
		metricExporter, err = otlpmetricgrpc.New(ctx)
	case ExporterStdout:
		metricExporter, err = stdoutmetric.New()
	case ExporterNone:
	}
	if err != nil {
		return nil, err
	}
	if metricExporter != nil {
		opts = append(opts, metric.WithReader(metric.NewPeriodicReader(metricExporter)))
	}

	return metric.NewMeterProvider(opts...), nil
}

func newLoggerProvider(
	ctx context.Context,
	exporter Exporter,
	res *resource.Resource,
) (*log.LoggerProvider, error) {
	opts := []log.LoggerProviderOption{log.WithResource(res)}

	var err error
	var logExporter log.Exporter
	switch exporter {
	case ExporterOTLP:
		logExporter, err = otlploggrpc.New(ctx)
	case ExporterStdout:
		logExporter, err = stdoutlog.New()
	case ExporterNone:
	}
	if err != nil {
		return nil, err
	}
	if logExporter != nil {
		opts = append(opts, log.WithProcessor(log.NewBatchProcessor(logExporter)))
	}

	return log.NewLoggerProvider(opts...), nil
}
