package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/architeacher/storetools/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	exporterTypeGRPC   = "grpc"
	exporterTypeStdOut = "stdout"
)

type shutdownFunc func(context.Context) error

// NewTracerProvider installs a batching tracer provider as the global provider.
// The returned shutdown flushes pending spans and closes the exporter connection.
func NewTracerProvider(appConfig config.App, telemetryConfig config.Telemetry) (trace.TracerProvider, func(context.Context) error, error) {
	ctx := context.Background()

	exporter, closeExporter, err := newSpanExporter(ctx, telemetryConfig)
	if err != nil {
		return nil, nil, err
	}

	res, err := serviceResource(ctx, appConfig, telemetryConfig)
	if err != nil {
		return nil, nil, errors.Join(err, closeExporter(ctx))
	}

	sampler := sdktrace.TraceIDRatioBased(telemetryConfig.Traces.SamplerRatio)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler, sdktrace.WithRemoteParentSampled(sampler))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), closeExporter(ctx))
	}

	return tp, shutdown, nil
}

// NewNoopTracerProvider is used when tracing is disabled.
func NewNoopTracerProvider() trace.TracerProvider {
	return noop.NewTracerProvider()
}

func serviceResource(ctx context.Context, appConfig config.App, telemetryConfig config.Telemetry) (*resource.Resource, error) {
	hostName, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to get host name: %w", err)
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(appConfig.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		semconv.DeploymentEnvironment(appConfig.Env.Name),
		semconv.HostName(hostName),
	}

	if config.CommitSHA != "" {
		attrs = append(attrs, attribute.String("commit_sha", config.CommitSHA))
	}

	if telemetryConfig.OtelProductCluster != "" {
		attrs = append(attrs, attribute.String("product_cluster", telemetryConfig.OtelProductCluster))
	}

	return resource.New(ctx, resource.WithAttributes(attrs...))
}

func newSpanExporter(ctx context.Context, cfg config.Telemetry) (sdktrace.SpanExporter, shutdownFunc, error) {
	noClose := func(context.Context) error { return nil }

	switch strings.ToLower(cfg.ExporterType) {
	case exporterTypeGRPC:
		conn, err := grpc.NewClient(
			net.JoinHostPort(cfg.OtelGRPCHost, cfg.OtelGRPCPort),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create a gRPC client connection to collector: %w", err)
		}

		exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, nil, errors.Join(fmt.Errorf("failed to create a gRPC trace exporter: %w", err), conn.Close())
		}

		return exporter, func(context.Context) error { return conn.Close() }, nil

	case exporterTypeStdOut:
		// Spans go to stderr; stdout carries rpc frames.
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create a stdout trace exporter: %w", err)
		}

		return exporter, noClose, nil

	default:
		return nil, nil, fmt.Errorf("unsupported exporter type %q", cfg.ExporterType)
	}
}
