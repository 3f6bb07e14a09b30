// Copyright © 2024 The col authors

package profiler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/bieber/col/lang/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

// a simple exporter that remembers spans - in the real world, you'd go to one
// of the myriad exporters supported by opencensus
type customExporter struct {
	sync.Mutex
	spans []*trace.SpanData
}

func (e *customExporter) ExportSpan(sd *trace.SpanData) {
	e.Lock()
	defer e.Unlock()
	e.spans = append(e.spans, sd)
}

func TestNewOpenCensusAnnotator(t *testing.T) {
	// Let's sample at 100% for the purposes of this test...
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := new(customExporter)
	trace.RegisterExporter(exporter)
	t.Cleanup(func() { trace.UnregisterExporter(exporter) })

	rt := loadRuntime(t, testCol)
	ppa := profiler.NewOpenCensusAnnotator(rt, context.Background(), profiler.WithDocLabeler())
	require.NoError(t, ppa.Enable())
	runMain(t, rt)
	assert.False(t, ppa.IsEnabled())

	exporter.Lock()
	defer exporter.Unlock()
	require.Len(t, exporter.spans, 5)
	assert.Equal(t, "Add_It", exporter.spans[0].Name)
	assert.Equal(t, "recurse", exporter.spans[1].Name)
	assert.Equal(t, exporter.spans[1].SpanID, exporter.spans[0].ParentSpanID)
	require.Len(t, exporter.spans[0].Annotations, 1)
	ann := exporter.spans[0].Annotations[0]
	assert.Equal(t, "source", ann.Message)
	assert.Equal(t, "test.col", ann.Attributes["file"])
	assert.Equal(t, int64(6), ann.Attributes["line"])
}

func TestOpenCensusAnnotatorContext(t *testing.T) {
	rt := loadRuntime(t, testCol)
	//nolint:staticcheck // a nil context is the error under test
	ppa := profiler.NewOpenCensusAnnotator(rt, nil)
	assert.Error(t, ppa.Enable())
	assert.Error(t, ppa.EnableWithContext(nil)) //nolint:staticcheck
	require.NoError(t, ppa.EnableWithContext(context.Background()))
	runMain(t, rt)
}
