// Copyright © 2024 The col authors

package profiler

import (
	"context"
	"errors"

	"github.com/bieber/col/lang"
	"github.com/golang-collections/collections/stack"
	"go.opencensus.io/trace"
)

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       *stack.Stack
}

var _ lang.Profiler = &ocAnnotator{}

// NewOpenCensusAnnotator returns a profiler which records an OpenCensus span
// for each traced call.
func NewOpenCensusAnnotator(runtime *lang.Runtime, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
		contexts:       stack.New(),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// EnableWithContext enables the profiler, nesting spans under ctx.
func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.currentContext = ctx
	return p.Enable()
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Start(fun *lang.Function) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	prettyLabel, _ := p.prettyFunName(fun)
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, prettyLabel)
	return func() {
		p.end(fun)
	}
}

func (p *ocAnnotator) end(fun *lang.Function) {
	file, line := "no-source", 0
	if fun.Source != nil {
		file, line = fun.Source.File, fun.Source.Line
	}
	p.currentSpan.Annotate([]trace.Attribute{
		trace.StringAttribute("file", file),
		trace.Int64Attribute("line", int64(line)),
		trace.StringAttribute("kind", fun.Kind.String()),
	}, "source")
	p.currentSpan.End()
	// And pop the current context back
	p.currentContext = p.contexts.Pop().(context.Context)
	p.currentSpan = trace.FromContext(p.currentContext)
}
