// pkg/telemetry/telemetry.go

package telemetry

import (
	"context"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var tracer trace.Tracer

// Init configures OpenTelemetry; call this early in main(). Telemetry is
// opt-in: without the marker file every span is a noop.
func Init(service string) error {
	if !enabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return nil
	}

	telemetryDir := "/var/log/argus"
	if err := os.MkdirAll(telemetryDir, 0o755); err != nil {
		telemetryDir = filepath.Join(os.Getenv("HOME"), ".argus", "telemetry")
		if err := os.MkdirAll(telemetryDir, 0o755); err != nil {
			return cerr.Wrap(err, "failed to create telemetry directory")
		}
	}

	telemetryFile := filepath.Join(telemetryDir, "telemetry.jsonl")
	file, err := os.OpenFile(telemetryFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(), // spans already carry timestamps
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("service.name", service),
				attribute.String("host.name", hostname()),
			),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	return nil
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tracer == nil {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer("argus")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// AnonTelemetryID returns a stable anonymous identifier for this install,
// creating it on first use.
func AnonTelemetryID() string {
	path := filepath.Join(os.Getenv("HOME"), ".argus", "telemetry_id")
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		return string(data)
	}
	id := uuid.New().String()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err == nil {
		_ = os.WriteFile(path, []byte(id), 0o600)
	}
	return id
}

func enabled() bool {
	path := filepath.Join(os.Getenv("HOME"), ".argus", "telemetry_on")
	_, err := os.Stat(path)
	return err == nil
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
