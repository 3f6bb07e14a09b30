// Copyright © 2024 The col authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/bieber/col/lang"
)

// This profiler type appends tags to pprof output if pprof is enabled.  It
// does not start pprof itself.  pprof samples at a fixed 100Hz, so only long
// running programs produce a useful profile.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lang.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler which labels the running goroutine
// with the name of the function being executed.
func NewPprofAnnotator(runtime *lang.Runtime, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return p.profiler.Complete()
}

func (p *pprofAnnotator) Start(fun *lang.Function) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyFunName(fun)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", prettyLabel))
	// labels propagate to goroutines started below this point
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}

// Labels returns the pprof labels currently applied by p.
func (p *pprofAnnotator) Labels() map[string]string {
	labels := make(map[string]string)
	if p.currentContext == nil {
		return labels
	}
	pprof.ForLabels(p.currentContext, func(key, value string) bool {
		labels[key] = value
		return true
	})
	return labels
}
