// Copyright © 2024 The col authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/bieber/col/lang/x/profiler"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestLogExporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	tp := trace.NewTracerProvider(
		trace.WithSyncer(profiler.NewLogExporter(logger)),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		assert.NoError(t, tp.Shutdown(context.Background()))
	})
	otel.SetTracerProvider(tp)

	rt := loadRuntime(t, testCol)
	require.NoError(t, profiler.NewOpenTelemetryAnnotator(rt, context.Background()).Enable())
	runMain(t, rt)

	entries := hook.AllEntries()
	require.Len(t, entries, 5)
	assert.Equal(t, "add", entries[0].Message)
	assert.Equal(t, "add", entries[0].Data["code.function"])
	assert.Contains(t, entries[0].Data, "parent_id")
	assert.NotContains(t, entries[4].Data, "parent_id")
}
