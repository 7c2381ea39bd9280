package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	grpccreds "google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceName identifies the shop in every span and metric it emits.
const ServiceName = "demo-shop"

// Options configure the exporters feeding the observability backend.
type Options struct {
	Endpoint    string
	Insecure    bool
	Outputs     []string // any of "otlp", "stdout", "none"
	Environment string
	Release     string
}

// Tracer returns the service tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(ServiceName)
}

// Meter returns the service meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(ServiceName)
}

// Init wires the global tracer and meter providers and returns a shutdown
// function that flushes both. The exporters connect lazily in the
// background, so an unreachable backend never blocks startup or request
// handling. Globals are registered only after both providers are fully
// built, so a failed Init leaves the default no-op providers in place.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(opts.Release),
			semconv.DeploymentEnvironment(opts.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	protocol, epHost := endpointProtocol(opts.Endpoint)

	// gRPC dial options (for gRPC exporters)
	var dialOpts []grpc.DialOption
	if protocol == "grpc" {
		if opts.Insecure {
			dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		} else {
			creds := grpccreds.NewClientTLSFromCert(nil, "")
			dialOpts = append(dialOpts, grpc.WithTransportCredentials(creds))
		}
	}

	wantOTLP := false
	wantStdout := false
	for _, o := range opts.Outputs {
		switch o {
		case "otlp":
			wantOTLP = true
		case "stdout":
			wantStdout = true
		}
	}

	// Trace exporters
	var processors []sdktrace.SpanProcessor
	if wantOTLP {
		if protocol == "grpc" {
			traceOpts := []otlptracegrpc.Option{
				otlptracegrpc.WithEndpoint(epHost),
				otlptracegrpc.WithDialOption(dialOpts...),
			}
			if opts.Insecure {
				traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
			}
			exporter, err := otlptracegrpc.New(ctx, traceOpts...)
			if err != nil {
				return nil, fmt.Errorf("failed to create trace exporter: %w", err)
			}
			processors = append(processors, sdktrace.NewBatchSpanProcessor(exporter))
		} else {
			traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(epHost)}
			if opts.Insecure {
				traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
			}
			exporter, err := otlptracehttp.New(ctx, traceOpts...)
			if err != nil {
				return nil, fmt.Errorf("failed to create HTTP trace exporter: %w", err)
			}
			processors = append(processors, sdktrace.NewBatchSpanProcessor(exporter))
		}
	}
	if wantStdout {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
		processors = append(processors, sdktrace.NewBatchSpanProcessor(exporter))
	}

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	for _, p := range processors {
		tracerProvider.RegisterSpanProcessor(p)
	}

	// Metric readers
	var readers []sdkmetric.Reader
	if wantOTLP {
		if protocol == "grpc" {
			metricOpts := []otlpmetricgrpc.Option{
				otlpmetricgrpc.WithEndpoint(epHost),
				otlpmetricgrpc.WithDialOption(dialOpts...),
			}
			if opts.Insecure {
				metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
			}
			exporter, err := otlpmetricgrpc.New(ctx, metricOpts...)
			if err != nil {
				_ = tracerProvider.Shutdown(ctx)
				return nil, fmt.Errorf("failed to create metric exporter: %w", err)
			}
			readers = append(readers, sdkmetric.NewPeriodicReader(exporter))
		} else {
			metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(epHost)}
			if opts.Insecure {
				metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
			}
			exporter, err := otlpmetrichttp.New(ctx, metricOpts...)
			if err != nil {
				_ = tracerProvider.Shutdown(ctx)
				return nil, fmt.Errorf("failed to create HTTP metric exporter: %w", err)
			}
			readers = append(readers, sdkmetric.NewPeriodicReader(exporter))
		}
	}
	if wantStdout {
		exporter, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
		if err != nil {
			_ = tracerProvider.Shutdown(ctx)
			return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter))
	}

	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		meterOpts = append(meterOpts, sdkmetric.WithReader(r))
	}
	meterProvider := sdkmetric.NewMeterProvider(meterOpts...)

	// Register globals only after both providers are fully built.
	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func(ctx context.Context) error {
		var errs []error
		if err := tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("shutdown errors: %v", errs)
		}
		return nil
	}, nil
}

// endpointProtocol picks OTLP/gRPC or OTLP/HTTP from the endpoint shape:
// an http(s) scheme or the conventional 4318 port means HTTP, everything
// else speaks gRPC.
func endpointProtocol(endpoint string) (protocol, host string) {
	protocol = "grpc"
	host = endpoint
	if u, err := url.Parse(endpoint); err == nil {
		if u.Scheme == "http" || u.Scheme == "https" {
			return "http", u.Host
		}
	}
	if strings.Contains(endpoint, ":4318") {
		protocol = "http"
	}
	return protocol, host
}
