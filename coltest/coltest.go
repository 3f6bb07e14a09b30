// Copyright © 2024 The col authors

// Package coltest runs col programs from Go tests.
//
// Example programs describe their expected behavior with annotations in the
// comment that documents main:
//
//	# @args 5
//	# @stdout 120
//	main = compose{println, str, fact, int, head}
//
// @args gives the program arguments, separated by spaces.  @input gives a
// constant that replaces the argument Sequence.  Each @stdout line is one
// expected line of output and @output is a constant that must equal the
// value main returns.
package coltest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/bieber/col/parser/literal"
)

// Runner is a test runner.
type Runner struct {
	// MaxDepth limits the call stack of each program.  When MaxDepth is zero
	// lang.DefaultMaxDepth is used.
	MaxDepth int

	// Stdin is the standard input given to each program.
	Stdin string
}

// Result is the outcome of one program run.
type Result struct {
	Value  *lang.Value
	Stdout string
	Err    error
}

// Annotations are the expectations found in the documentation of main.
type Annotations struct {
	Args   []string
	Input  *lang.Value
	Stdout []string
	Output *lang.Value
}

// NewRuntime returns a Runtime for table whose log messages go to t.Log and
// whose output is collected in stdout.
func (r *Runner) NewRuntime(t testing.TB, table *lang.SymbolTable, stdout *bytes.Buffer) (*lang.Runtime, *Logger) {
	logger, w := NewLogrus(t)
	depth := r.MaxDepth
	if depth == 0 {
		depth = lang.DefaultMaxDepth
	}
	rt := lang.NewRuntime(table,
		lang.WithStdout(stdout),
		lang.WithStdin(strings.NewReader(r.Stdin)),
		lang.WithLogger(logger),
		lang.WithMaxDepth(depth),
	)
	return rt, w
}

// Run loads src and executes its main definition on in.  Load failures are
// fatal to the test.
func (r *Runner) Run(t testing.TB, name string, src string, in *lang.Value) *Result {
	t.Helper()
	table, err := parser.Load(name, []byte(src))
	if err != nil {
		t.Fatalf("Unable to load %s: %v", name, err)
	}
	var stdout bytes.Buffer
	rt, w := r.NewRuntime(t, table, &stdout)
	defer w.Flush()
	v, err := rt.RunMainValue(in)
	return &Result{Value: v, Stdout: stdout.String(), Err: err}
}

// RunFile runs the program at path with the annotated arguments or input and
// checks the annotated expectations.
func (r *Runner) RunFile(t *testing.T, path string) {
	prog, err := parser.LoadFile(path)
	if err != nil {
		t.Errorf("Unable to load %s: %v", path, err)
		return
	}
	ann, err := ParseAnnotations(prog)
	if err != nil {
		t.Errorf("%s: %v", path, err)
		return
	}
	in := ann.Input
	if in == nil {
		in = lang.Args(ann.Args)
	}
	var stdout bytes.Buffer
	rt, w := r.NewRuntime(t, prog.Table, &stdout)
	defer w.Flush()
	v, err := rt.RunMainValue(in)
	if err != nil {
		t.Errorf("%s: %v", path, err)
		return
	}
	if ann.Stdout != nil {
		want := strings.Join(ann.Stdout, "\n") + "\n"
		if stdout.String() != want {
			t.Errorf("%s: unexpected output\nwant: %q\ngot:  %q", path, want, stdout.String())
		}
	}
	if ann.Output != nil && !lang.Equal(ann.Output, v) {
		t.Errorf("%s: main returned %v, want %v", path, v, ann.Output)
	}
}

// RunFiles runs every program matching pattern as a subtest.
func (r *Runner) RunFiles(t *testing.T, pattern string) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("Failed to list programs: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("No programs match %s", pattern)
	}
	sort.Strings(files)
	for _, path := range files {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			r.RunFile(t, path)
		})
	}
}

// ParseAnnotations reads the annotations in the documentation of prog's main
// definition.
func ParseAnnotations(prog *parser.Program) (*Annotations, error) {
	main, err := prog.Main()
	if err != nil {
		return nil, err
	}
	ann := &Annotations{}
	for _, line := range strings.Split(main.Doc, "\n") {
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "@args":
			ann.Args = strings.Fields(value)
		case "@input":
			ann.Input, err = literal.Parse(value)
		case "@stdout":
			ann.Stdout = append(ann.Stdout, value)
		case "@output":
			ann.Output, err = literal.Parse(value)
		default:
			if strings.HasPrefix(key, "@") {
				err = fmt.Errorf("unknown annotation %s", key)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return ann, nil
}
