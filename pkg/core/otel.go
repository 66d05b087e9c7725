package core

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "skills-dashboard"

type OtelService interface {
	SpanFromContext(c context.Context) trace.Span
	Tracer(name string) trace.Tracer
	Meter(name string) metric.Meter
	LoggerProvider() log.LoggerProvider
	Shutdown(c context.Context, logger *slog.Logger)
}

type otelService struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	logProvider    log.LoggerProvider
	shutdown       func(context.Context) error
}

var _ OtelService = (*otelService)(nil)

// NewOtelService wires the global tracer and meter providers. With
// Otel.Disable set it returns no-op providers and touches no globals.
func NewOtelService(ctx context.Context, cfg *Config) (OtelService, error) {
	if cfg.Otel.Disable {
		return NewNoopOtelService(), nil
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	var (
		traceExp  sdktrace.SpanExporter
		metricExp sdkmetric.Exporter
		logProc   []sdklog.LoggerProviderOption
	)

	switch cfg.Otel.Exporter {
	case "stdout":
		traceExp, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		metricExp, err = stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create meter exporter: %w", err)
		}
		logExp, logErr := stdoutlog.New()
		if logErr != nil {
			return nil, fmt.Errorf("failed to create log exporter: %w", logErr)
		}
		logProc = append(logProc, sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)))
	default:
		conn, connErr := newConn(cfg)
		if connErr != nil {
			return nil, connErr
		}
		traceExp, err = otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		metricExp, err = otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create meter exporter: %w", err)
		}
	}

	traceProvider := newTraceProvider(res, traceExp)
	meterProvider := newMeterProvider(res, metricExp)
	logProvider := sdklog.NewLoggerProvider(append(logProc, sdklog.WithResource(res))...)

	shutdown := func(shutdownCtx context.Context) error {
		return errors.Join(
			traceProvider.Shutdown(shutdownCtx),
			meterProvider.Shutdown(shutdownCtx),
			logProvider.Shutdown(shutdownCtx),
		)
	}

	return &otelService{
		meterProvider:  meterProvider,
		tracerProvider: traceProvider,
		logProvider:    logProvider,
		shutdown:       shutdown,
	}, nil
}

func NewNoopOtelService() OtelService {
	return &otelService{
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
		logProvider:    lognoop.NewLoggerProvider(),
		shutdown:       func(context.Context) error { return nil },
	}
}

func (s *otelService) LoggerProvider() log.LoggerProvider {
	return s.logProvider
}

func (s *otelService) Tracer(name string) trace.Tracer {
	return s.tracerProvider.Tracer(name)
}

func (s *otelService) Meter(name string) metric.Meter {
	return s.meterProvider.Meter(name)
}

func (*otelService) SpanFromContext(c context.Context) trace.Span {
	return trace.SpanFromContext(c)
}

func (s *otelService) Shutdown(c context.Context, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	err := s.shutdown(shutdownCtx)
	if err != nil {
		logger.ErrorContext(
			c,
			"Error shutting down otel",
			"err",
			err,
		)
	}
}

var ServiceVersion string

func newConn(cfg *Config) (*grpc.ClientConn, error) {
	creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	if cfg.Otel.OtlpExporter.Insecure {
		creds = insecure.NewCredentials()
	}

	conn, e := grpc.NewClient(
		cfg.Otel.OtlpExporter.Endpoint,
		grpc.WithTransportCredentials(creds),
	)

	if e != nil {
		return nil, fmt.Errorf("failed to create GRPC connection: %w", e)
	}

	return conn, nil
}

func newResource(ctx context.Context) (*resource.Resource, error) {
	res, e := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithOS(),
		resource.WithProcess(),
		resource.WithContainer(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)

	if e == nil {
		return res, nil
	}
	return nil, fmt.Errorf("failed to create telemetry resource: %w", e)
}

func newTraceProvider(res *resource.Resource, exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	bsp := sdktrace.NewBatchSpanProcessor(exp)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider
}

func newMeterProvider(res *resource.Resource, exp sdkmetric.Exporter) *sdkmetric.MeterProvider {
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(provider)

	return provider
}
