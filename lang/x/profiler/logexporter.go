// Copyright © 2024 The col authors

package profiler

import (
	"context"

	"github.com/sirupsen/logrus"
	octrace "go.opencensus.io/trace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter writes finished spans to a logger.  It can be registered as
// both an OpenTelemetry and an OpenCensus exporter.
type LogExporter struct {
	Logger logrus.FieldLogger
}

var (
	_ sdktrace.SpanExporter = (*LogExporter)(nil)
	_ octrace.Exporter      = (*LogExporter)(nil)
)

// NewLogExporter returns an exporter that logs spans at info level.
func NewLogExporter(logger logrus.FieldLogger) *LogExporter {
	return &LogExporter{Logger: logger}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		fields := logrus.Fields{
			"trace_id": s.SpanContext().TraceID().String(),
			"span_id":  s.SpanContext().SpanID().String(),
			"duration": s.EndTime().Sub(s.StartTime()),
		}
		if s.Parent().IsValid() {
			fields["parent_id"] = s.Parent().SpanID().String()
		}
		for _, kv := range s.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		e.Logger.WithFields(fields).Info(s.Name())
	}
	return ctx.Err()
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}

// ExportSpan implements the OpenCensus trace.Exporter interface.
func (e *LogExporter) ExportSpan(sd *octrace.SpanData) {
	fields := logrus.Fields{
		"trace_id":  sd.TraceID.String(),
		"span_id":   sd.SpanID.String(),
		"parent_id": sd.ParentSpanID.String(),
		"duration":  sd.EndTime.Sub(sd.StartTime),
	}
	for _, a := range sd.Annotations {
		for k, v := range a.Attributes {
			fields[k] = v
		}
	}
	e.Logger.WithFields(fields).Info(sd.Name)
}
