package telemetry

import (
	"context"
	"testing"

	"github.com/cropcraft/server/internal/config"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracingDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitTracing(context.Background(), config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider(), "disabled tracing must not replace the global provider")
}

func TestInitTracingNoneExporter(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{
		Enabled:     true,
		Exporter:    "none",
		ServiceName: "cropcraft-test",
		SampleRate:  1.0,
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	_, span := Tracer("telemetry-test").Start(context.Background(), "op")
	defer span.End()
	require.True(t, span.SpanContext().IsValid())
	require.True(t, span.SpanContext().IsSampled())
}

func TestInitTracingRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TracingConfig
	}{
		{name: "sample rate above one", cfg: config.TracingConfig{Enabled: true, Exporter: "none", SampleRate: 1.5}},
		{name: "negative sample rate", cfg: config.TracingConfig{Enabled: true, Exporter: "none", SampleRate: -0.1}},
		{name: "unknown exporter", cfg: config.TracingConfig{Enabled: true, Exporter: "zipkin", SampleRate: 1}},
		{name: "otlp without endpoint", cfg: config.TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitTracing(context.Background(), tt.cfg, "test")
			require.Error(t, err)
		})
	}
}
