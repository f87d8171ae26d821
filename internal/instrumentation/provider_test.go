package instrumentation

import (
	"context"
	"testing"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if provider.Enabled() {
		t.Error("expected provider to be disabled")
	}
	if provider.Metrics() == nil {
		t.Error("expected metrics to be non-nil even when disabled")
	}

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no error on shutdown, got %v", err)
	}
}

func TestNewProvider_PrometheusExporter(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("expected provider to be enabled")
	}
	if provider.Metrics() == nil {
		t.Error("expected metrics to be non-nil")
	}
	if provider.Tracer("test") == nil {
		t.Error("expected tracer to be non-nil")
	}
}

func TestNewProvider_UnsupportedMetricsExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: "graphite",
		TracingExporter: ExporterNone,
	})
	if err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
}

func TestProvider_TracerWhenDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{
		ServiceName: "test-service",
		Enabled:     false,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Must hand out a usable no-op tracer
	tracer := provider.Tracer("test")
	if tracer == nil {
		t.Fatal("expected non-nil tracer")
	}
	_, span := tracer.Start(context.Background(), "op")
	span.End()
}
