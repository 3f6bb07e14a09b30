// Copyright © 2024 The col authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/lang/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newExporter(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)
	return exporter
}

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := newExporter(t)
	rt := loadRuntime(t, testCol)
	ppa := profiler.NewOpenTelemetryAnnotator(rt, context.Background())
	require.NoError(t, ppa.Enable())
	assert.Error(t, ppa.Enable())
	runMain(t, rt)

	spans := exporter.GetSpans()
	require.Len(t, spans, 5, "Expected one span per user call")
	var names []string
	for _, s := range spans {
		names = append(names, s.Name)
	}
	// spans are exported as they end
	assert.Equal(t, []string{"add", "recurse", "recurse", "recurse", "add"}, names)

	// the innermost add is nested three recurse calls deep
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.False(t, spans[3].Parent.IsValid())
	assert.False(t, spans[4].Parent.IsValid())

	attrs := make(map[string]string)
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "add", attrs["code.function"])
	assert.Equal(t, "user", attrs["col.kind"])
	assert.Equal(t, "test.col", attrs["code.filepath"])
	assert.Equal(t, "6", attrs["code.lineno"])

	// each recursive call sits deeper in the col call stack
	depth := func(i int) int64 {
		for _, kv := range spans[i].Attributes {
			if kv.Key == "col.depth" {
				return kv.Value.AsInt64()
			}
		}
		t.Fatalf("span %d has no col.depth", i)
		return 0
	}
	assert.Less(t, depth(3), depth(2))
	assert.Less(t, depth(2), depth(1))
	assert.Less(t, depth(1), depth(0))
}

func TestOpenTelemetryAnnotatorComplete(t *testing.T) {
	exporter := newExporter(t)
	rt := loadRuntime(t, testCol)
	ppa := profiler.NewOpenTelemetryAnnotator(rt, context.Background())
	require.NoError(t, ppa.Enable())

	// calls that never return are ended by Complete
	ppa.Start(lang.NewUser("outer"))
	stop := ppa.Start(lang.NewUser("inner"))
	assert.Empty(t, exporter.GetSpans())
	require.NoError(t, ppa.Complete())
	assert.False(t, ppa.IsEnabled())

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "inner", spans[0].Name)
	assert.Equal(t, "outer", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())

	stop()
	assert.Len(t, exporter.GetSpans(), 2)
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := newExporter(t)
	rt := loadRuntime(t, testCol)
	ppa := profiler.NewOpenTelemetryAnnotator(rt, context.Background(),
		profiler.WithDocFilter(),
		profiler.WithDocLabeler())
	require.NoError(t, ppa.Enable())
	runMain(t, rt)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2, "Expected selective spans")
	assert.Equal(t, "Add_It", spans[0].Name, "Expected custom label")
	assert.Equal(t, "Add_It", spans[1].Name, "Expected custom label")
}

func TestNewOpenTelemetryAnnotatorBuiltins(t *testing.T) {
	exporter := newExporter(t)
	rt := loadRuntime(t, testCol)
	ppa := profiler.NewOpenTelemetryAnnotator(rt, context.Background(), profiler.WithBuiltins())
	require.NoError(t, ppa.Enable())
	runMain(t, rt)

	counts := make(map[string]int)
	for _, s := range exporter.GetSpans() {
		counts[s.Name]++
	}
	assert.Equal(t, 3, counts["recurse"])
	assert.Equal(t, 2, counts["+"])
	assert.Equal(t, 3, counts["if"])
}
