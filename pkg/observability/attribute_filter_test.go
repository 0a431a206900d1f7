package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/smellscope/pkg/observability"
)

func spanAttrMap(span tracetest.SpanStub) map[string]any {
	out := make(map[string]any, len(span.Attributes))
	for _, kv := range span.Attributes {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}

	return out
}

func recordSpan(t *testing.T, logger *slog.Logger, attrs ...attribute.KeyValue) map[string]any {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(observability.NewAttributeFilter(sdktrace.NewSimpleSpanProcessor(exporter), logger)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(attrs...)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	return spanAttrMap(spans[0])
}

func TestAttributeFilter_AllowsKnownKeys(t *testing.T) {
	t.Parallel()

	attrs := recordSpan(t, nil,
		attribute.Int("analysis.classes", 12),
		attribute.String("rules.smell", "GOD_CLASS"),
		attribute.Bool("error", true),
	)

	assert.Equal(t, int64(12), attrs["analysis.classes"])
	assert.Equal(t, "GOD_CLASS", attrs["rules.smell"])
	assert.Equal(t, true, attrs["error"])
}

func TestAttributeFilter_BlocksSourceAndUnknown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))

	attrs := recordSpan(t, logger,
		attribute.String("source.text", "class A {}"),
		attribute.String("user.name", "alice"),
		attribute.String("build.path", "a.cs"),
	)

	assert.NotContains(t, attrs, "source.text")
	assert.NotContains(t, attrs, "user.name")
	assert.Equal(t, "a.cs", attrs["build.path"])
	assert.Contains(t, buf.String(), "attribute blocked by filter")
}
