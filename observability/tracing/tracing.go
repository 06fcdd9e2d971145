// Package tracing initializes the global OpenTelemetry tracer provider and exports spans over OTLP gRPC.
package tracing

import (
	"context"
	"net"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rise-and-shine/bucketfs/meta"
)

// InitGlobalTracer installs the global tracer provider described by cfg.
// It returns a shutdown function that flushes pending spans; call it on exit.
func InitGlobalTracer(ctx context.Context, cfg Config) (func() error, error) {
	if cfg.Disable {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func() error { return nil }, nil
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(net.JoinHostPort(cfg.ExporterHost, cast.ToString(cfg.ExporterPort))),
		otlptracegrpc.WithReconnectionPeriod(reconnectionPeriod),
	)

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	attrs := make([]attribute.KeyValue, 0, len(cfg.Tags)+2)
	for k, v := range cfg.Tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	attrs = append(attrs,
		attribute.String("service.name", meta.ServiceName()),
		attribute.String("service.version", meta.ServiceVersion()),
	)

	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate))),
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewSchemaless(attrs...)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := tp.ForceFlush(ctx)
		if err != nil {
			return errx.Wrap(err)
		}
		return errx.Wrap(tp.Shutdown(ctx))
	}, nil
}
