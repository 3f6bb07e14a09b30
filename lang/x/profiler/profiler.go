// Copyright © 2024 The col authors

// Package profiler provides lang.Profiler implementations: a callgrind file
// writer and annotators for OpenTelemetry, OpenCensus and pprof.
package profiler

import (
	"fmt"

	"github.com/bieber/col/lang"
)

// profiler is a minimal lang.Profiler
type profiler struct {
	runtime    *lang.Runtime
	enabled    bool
	builtins   bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lang.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures a profiler.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	p.enabled = false
	return nil
}

func (p *profiler) Start(fun *lang.Function) func() {
	return func() {}
}

// prettyFunName returns a pretty name and original name for a fun. If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fun *lang.Function) (string, string) {
	origLabel := fun.Name
	if origLabel == "" {
		return "", ""
	}
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(p.runtime, fun)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(fun *lang.Function) bool {
	if !p.enabled {
		return true
	}
	if !p.builtins && defaultSkipFilter(fun) {
		return true
	}
	return p.skipFilter != nil && p.skipFilter(fun)
}

// funDoc returns the documentation of the definition fun refers to.
func funDoc(rt *lang.Runtime, fun *lang.Function) string {
	if fun.Doc != "" {
		return fun.Doc
	}
	if fun.Kind != lang.KindUser || rt == nil {
		return ""
	}
	def, ok := rt.Table.Find(fun.Name)
	if !ok {
		return ""
	}
	return def.Doc
}
