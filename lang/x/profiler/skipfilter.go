// Copyright © 2024 The col authors

package profiler

import (
	"regexp"

	"github.com/bieber/col/lang"
)

// SkipFilter returns true for functions which should not be traced.
type SkipFilter func(fun *lang.Function) bool

// By default only calls to user definitions are traced.
func defaultSkipFilter(fun *lang.Function) bool {
	return fun.Kind != lang.KindUser
}

// WithBuiltins traces primitives and forms as well as user definitions.
func WithBuiltins() Option {
	return func(p *profiler) {
		p.builtins = true
	}
}

// WithDocFilter filters to only include spans for definitions whose doc
// comment denotes tracing.
func WithDocFilter() Option {
	return func(p *profiler) {
		p.skipFilter = func(fun *lang.Function) bool {
			return docSkipFilter(p.runtime, fun)
		}
	}
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter. Every definition with a doc comment that contains this
// string will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(rt *lang.Runtime, fun *lang.Function) bool {
	docStr := funDoc(rt, fun)
	if docStr == "" {
		return true
	}
	// do not skip docs that include trace constant
	return !docTraceRegExp.MatchString(docStr)
}
