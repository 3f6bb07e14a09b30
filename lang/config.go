// Copyright © 2024 The col authors

package lang

import (
	"bufio"
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a Runtime.
type Config func(rt *Runtime)

// WithStdout returns a Config that makes output primitives write to w.
func WithStdout(w io.Writer) Config {
	return func(rt *Runtime) {
		rt.Stdout = w
	}
}

// WithStdin returns a Config that makes input primitives read from r.
func WithStdin(r io.Reader) Config {
	return func(rt *Runtime) {
		rt.stdin = bufio.NewReader(r)
	}
}

// WithLogger returns a Config that sends runtime diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Config {
	return func(rt *Runtime) {
		rt.Logger = logger
	}
}

// WithProfiler returns a Config that reports function execution to p.
func WithProfiler(p Profiler) Config {
	return func(rt *Runtime) {
		rt.Profiler = p
	}
}

// WithMaxDepth returns a Config that limits the height of the call stack to
// n.  A non-positive n removes the limit, leaving deep recursion bounded only
// by the host stack.
func WithMaxDepth(n int) Config {
	return func(rt *Runtime) {
		rt.Stack.MaxHeight = n
	}
}
