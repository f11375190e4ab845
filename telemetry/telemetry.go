// Package telemetry wires OpenTelemetry trace and log export for the
// sortedlist command.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amp-labs/amp-sortedlist/build"
	"github.com/amp-labs/amp-sortedlist/envutil"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout = 5 * time.Second

	instrumentationName = "github.com/amp-labs/amp-sortedlist"
)

var (
	tracerProvider *sdktrace.TracerProvider //nolint:gochecknoglobals
	loggerProvider *sdklog.LoggerProvider   //nolint:gochecknoglobals
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfigFromEnv loads the configuration from the standard OTEL_*
// environment variables. Tracing is off unless OTEL_ENABLED is true. The
// service version defaults to the binary's build version.
func LoadConfigFromEnv(serviceName string) (*Config, error) {
	enabled, err := envutil.Bool("OTEL_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	svcName, err := envutil.String("OTEL_SERVICE_NAME", envutil.Default(serviceName)).Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envutil.String("OTEL_SERVICE_VERSION", envutil.Default(build.Get().Version)).Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", envutil.Default("")).Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envutil.Duration("OTEL_EXPORTER_OTLP_TIMEOUT", envutil.Default(defaultTimeout)).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Endpoint:       endpoint,
		Enabled:        enabled,
		Timeout:        timeout,
	}, nil
}

// Initialize sets up OTLP/HTTP export of traces and logs. It returns a slog
// handler that forwards records to the log exporter, for use with
// logger.WithHandler; the handler is nil when telemetry is disabled.
func Initialize(ctx context.Context, config *Config) (slog.Handler, error) {
	if !config.Enabled {
		slog.Debug("OpenTelemetry is disabled")

		return nil, nil //nolint:nilnil
	}

	if config.Endpoint == "" {
		slog.Warn("OpenTelemetry endpoint not configured, telemetry will be disabled")

		return nil, nil //nolint:nilnil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	logExporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(config.Endpoint),
		otlploghttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	loggerProvider = sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("OpenTelemetry initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"endpoint", config.Endpoint,
	)

	return otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(loggerProvider)), nil
}

// Tracer returns the tracer used by the sortedlist command. Before
// Initialize, or when telemetry is disabled, it is a no-op tracer.
func Tracer() trace.Tracer { //nolint:ireturn
	return otel.Tracer(instrumentationName)
}

// Shutdown flushes and stops the providers started by Initialize.
func Shutdown(ctx context.Context) error {
	var errs []error

	if tracerProvider != nil {
		slog.Debug("Shutting down OpenTelemetry tracer provider")

		errs = append(errs, tracerProvider.Shutdown(ctx))
		tracerProvider = nil
	}

	if loggerProvider != nil {
		errs = append(errs, loggerProvider.Shutdown(ctx))
		loggerProvider = nil
	}

	return errors.Join(errs...)
}
