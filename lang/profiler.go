// Copyright © 2024 The col authors

package lang

// Version is reported by profilers and the command line.
const Version = "0.1.0"

// Profiler observes function execution.  Implementations live in
// lang/x/profiler.
type Profiler interface {
	// IsEnabled reports whether the profiler is collecting data.
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// Complete ends the profiling session and flushes any output.
	Complete() error
	// Start marks the entry of fun and returns a function which marks its
	// exit.
	Start(fun *Function) func()
}
