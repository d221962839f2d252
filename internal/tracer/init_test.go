package tracer

import (
	"context"
	"testing"

	"vetscribe-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer("vetscribe-test", config.TracingConfig{Enabled: false, Endpoint: "localhost:4318"})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProviderSampleRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  int
	}{
		{name: "keep all", ratio: 1, want: 5},
		{name: "drop all", ratio: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp := NewProvider("vetscribe-test", config.TracingConfig{Enabled: true, SampleRatio: tt.ratio}, sdktrace.WithSpanProcessor(recorder))
			t.Cleanup(func() { tp.Shutdown(context.Background()) })

			tr := tp.Tracer("test")
			for i := 0; i < 5; i++ {
				_, span := tr.Start(context.Background(), "generate")
				span.End()
			}

			ended := recorder.Ended()
			require.Len(t, ended, tt.want)
			for _, s := range ended {
				name, ok := s.Resource().Set().Value(semconv.ServiceNameKey)
				require.True(t, ok)
				assert.Equal(t, "vetscribe-test", name.AsString())
			}
		})
	}
}
