// Copyright © 2024 The col authors

package lang

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Runtime holds the state shared by every step of a program's execution.
// The definition table is read-only once execution starts.
type Runtime struct {
	Table    *SymbolTable
	Stdout   io.Writer
	Logger   logrus.FieldLogger
	Profiler Profiler
	Stack    *CallStack
	stdin    *bufio.Reader
}

// NewRuntime returns a Runtime that executes definitions from table.  By
// default program output goes to os.Stdout, input comes from os.Stdin and
// log messages at warning level and above go to os.Stderr.
func NewRuntime(table *SymbolTable, config ...Config) *Runtime {
	if table == nil {
		table = NewSymbolTable()
	}
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	rt := &Runtime{
		Table:  table,
		Stdout: os.Stdout,
		Logger: logger,
		Stack:  &CallStack{MaxHeight: DefaultMaxDepth},
	}
	for _, fn := range config {
		fn(rt)
	}
	return rt
}

// Stdin returns the reader used by input primitives.
func (rt *Runtime) Stdin() *bufio.Reader {
	if rt.stdin == nil {
		rt.stdin = bufio.NewReader(os.Stdin)
	}
	return rt.stdin
}

// Run executes fn on in.  Run returns an error only when execution is
// aborted by a resource fault such as a *StackOverflowError.  Language level
// failures are reported as a bottom result.
func (rt *Runtime) Run(fn *Function, in *Value) (out *Value, err error) {
	if rt.Profiler != nil && rt.Profiler.IsEnabled() {
		defer func() {
			if perr := rt.Profiler.Complete(); perr != nil {
				rt.Logger.WithError(perr).Warn("profiler failed to complete")
			}
		}()
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		soe, ok := r.(*StackOverflowError)
		if !ok {
			panic(r)
		}
		rt.Stack.Reset()
		out, err = nil, soe
	}()
	return rt.Execute(fn, in), nil
}

// RunMain executes the definition named main on a Sequence of Strings built
// from args.
func (rt *Runtime) RunMain(args []string) (*Value, error) {
	return rt.RunMainValue(Args(args))
}

// RunMainValue executes the definition named main on in.
func (rt *Runtime) RunMainValue(in *Value) (*Value, error) {
	main, ok := rt.Table.Find("main")
	if !ok {
		return nil, ErrNoMain
	}
	return rt.Run(main, in)
}

// Args returns a Sequence of Strings, one for each element of args.
func Args(args []string) *Value {
	seq := SeqValue()
	for _, arg := range args {
		seq.Seq.PushBack(StringValue(arg))
	}
	return seq
}

// overflow logs the stack that could not grow any further.
func (rt *Runtime) overflow(err error) {
	var buf bytes.Buffer
	_, _ = rt.Stack.DebugPrint(&buf)
	rt.Logger.WithError(err).Debug(buf.String())
}
