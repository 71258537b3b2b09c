package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerRequiresServiceName(t *testing.T) {
	_, err := InitTracer(context.Background(), Config{})
	assert.Error(t, err)
}

func TestInitTracerRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracer(context.Background(), Config{ServiceName: ServiceName, TracesExport: "zipkin"})
	assert.Error(t, err)
}

func TestInitTracerNoop(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "traceidratio")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "nope")

	shutdown, err := InitTracer(context.Background(), Config{ServiceName: ServiceName})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "test")
	defer span.End()
	assert.NotNil(t, ctx)
	assert.True(t, span.SpanContext().IsValid())
}
