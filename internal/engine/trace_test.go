package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// installTestTracer swaps the global tracer provider for one recording into
// an in-memory exporter. Not parallel-safe; tests using it must not call
// t.Parallel.
func installTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return exporter
}

func TestEngine_RunFetch_EmitsSpan(t *testing.T) {
	exporter := installTestTracer(t)

	client := &fakeClient{items: []domain.ResultItem{
		{ID: "rtx-4090", Benchmark: 35000,
			Listings: map[string]domain.Listing{"a": {Price: "999"}}},
	}}
	eng := newTestEngine(t, client)

	require.NoError(t, eng.RunFetch(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "engine.fetch", spans[0].Name)
	assert.NotEqual(t, codes.Error, spans[0].Status.Code)
}

func TestEngine_RunFetch_SpanRecordsError(t *testing.T) {
	exporter := installTestTracer(t)

	client := &fakeClient{err: errors.New("connection reset")}
	eng := newTestEngine(t, client)

	require.Error(t, eng.RunFetch(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "engine.fetch", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1, "error should be recorded as a span event")
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}
