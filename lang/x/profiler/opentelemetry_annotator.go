// Copyright © 2024 The col authors

package profiler

import (
	"context"
	"errors"

	"github.com/bieber/col/lang"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

	defaultTracerName = "col"
)

var _ lang.Profiler = &otelAnnotator{}

// otelAnnotator keeps one open span per traced call that has not returned.
// Each span's context parents the spans of the calls it makes.
type otelAnnotator struct {
	profiler
	parent context.Context
	open   []tracedCall
}

type tracedCall struct {
	ctx  context.Context
	span trace.Span
}

// NewOpenTelemetryAnnotator returns a profiler which creates a span for each
// traced call, nested under any span in parentContext.
func NewOpenTelemetryAnnotator(runtime *lang.Runtime, parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		parent: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.parent == nil {
		return errors.New("spans need a parent context linked to opentelemetry")
	}
	return p.profiler.Enable()
}

// Complete ends the spans of calls that never returned, innermost first.
func (p *otelAnnotator) Complete() error {
	for i := len(p.open) - 1; i >= 0; i-- {
		p.open[i].span.End()
	}
	p.open = nil
	return p.profiler.Complete()
}

func (p *otelAnnotator) current() context.Context {
	if n := len(p.open); n > 0 {
		return p.open[n-1].ctx
	}
	return p.parent
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = defaultTracerName
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(fun *lang.Function) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	label, name := p.prettyFunName(fun)
	parent := p.current()
	ctx, span := contextTracer(parent).Start(parent, label,
		trace.WithAttributes(p.callAttributes(fun, name)...))
	p.open = append(p.open, tracedCall{ctx: ctx, span: span})
	depth := len(p.open)
	return func() {
		span.End()
		// calls abandoned by Complete are already ended
		if len(p.open) >= depth {
			p.open = p.open[:depth-1]
		}
	}
}

func (p *otelAnnotator) callAttributes(fun *lang.Function, name string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.CodeFunction(name),
		attribute.String("col.kind", fun.Kind.String()),
		attribute.Int("col.depth", p.runtime.Stack.Height()),
	}
	if loc := fun.Source; loc != nil {
		attrs = append(attrs,
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
			semconv.CodeColumn(loc.Col),
		)
	}
	return attrs
}
