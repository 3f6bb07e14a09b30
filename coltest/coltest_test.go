// Copyright © 2024 The col authors

package coltest

import (
	"testing"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamples(t *testing.T) {
	r := &Runner{}
	r.RunFiles(t, "../examples/*.col")
}

func TestRun(t *testing.T) {
	r := &Runner{Stdin: "hi\n"}
	res := r.Run(t, "echo", `main = compose{println, readln}`, lang.SeqValue())
	require.NoError(t, res.Err)
	assert.Equal(t, "hi\n", res.Stdout)
	assert.Equal(t, `"hi"`, res.Value.String())
}

func TestRunOverflow(t *testing.T) {
	r := &Runner{MaxDepth: 50}
	res := r.Run(t, "loop", `main = loop
loop = compose{loop, 1+}`, lang.IntValue(0))
	var soe *lang.StackOverflowError
	assert.ErrorAs(t, res.Err, &soe)
	assert.Nil(t, res.Value)
}

func TestParseAnnotations(t *testing.T) {
	prog, err := parser.LoadProgram("test", []byte(`# Doubles things.
# @args a b
# @input <1, 'c'>
# @stdout first
# @stdout second
# @output true
main = id`))
	require.NoError(t, err)
	ann, err := ParseAnnotations(prog)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ann.Args)
	assert.Equal(t, "<1, 'c'>", ann.Input.String())
	assert.Equal(t, []string{"first", "second"}, ann.Stdout)
	assert.True(t, lang.Equal(lang.BoolValue(true), ann.Output))

	prog, err = parser.LoadProgram("test", []byte("# @expect 1\nmain = id"))
	require.NoError(t, err)
	_, err = ParseAnnotations(prog)
	assert.EqualError(t, err, "unknown annotation @expect")

	prog, err = parser.LoadProgram("test", []byte("# @input <1,\nmain = id"))
	require.NoError(t, err)
	_, err = ParseAnnotations(prog)
	assert.Error(t, err)

	prog, err = parser.LoadProgram("test", []byte("f = id"))
	require.NoError(t, err)
	_, err = ParseAnnotations(prog)
	assert.ErrorIs(t, err, lang.ErrNoMain)
}

type recordingTB struct {
	testing.TB
	lines []string
}

func (tb *recordingTB) Log(args ...interface{}) {
	tb.lines = append(tb.lines, args[0].(string))
}

func TestLogger(t *testing.T) {
	tb := &recordingTB{TB: t}
	w := NewLogger(tb)
	_, err := w.Write([]byte("one\ntw"))
	require.NoError(t, err)
	_, err = w.Write([]byte("o\nthree"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, tb.lines)
	w.Flush()
	assert.Equal(t, []string{"one", "two", "three"}, tb.lines)
	w.Flush()
	assert.Len(t, tb.lines, 3)
}
