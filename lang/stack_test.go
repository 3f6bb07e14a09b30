// Copyright © 2024 The col authors

package lang

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/bieber/col/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	require.NoError(t, s.Push(NewUser("f")))
	require.NoError(t, s.Push(prim("id")))
	assert.Equal(t, "id", s.Top().Name)

	err := s.Push(NewUser("g"))
	var soe *StackOverflowError
	require.ErrorAs(t, err, &soe)
	assert.Equal(t, 3, soe.Height)
	assert.Equal(t, "g", soe.Frame.Name)
	assert.Equal(t, 2, s.Height())

	assert.Equal(t, "id", s.Pop().Name)
	assert.Equal(t, "f", s.Pop().Name)
	assert.Panics(t, func() { s.Pop() })
}

func TestCallStackDebugPrint(t *testing.T) {
	s := &CallStack{}
	for i := 0; i < 12; i++ {
		fn := NewUser(fmt.Sprintf("f%d", i))
		fn.Source = &token.Location{File: "test.col", Line: i + 1, Col: 1}
		require.NoError(t, s.Push(fn))
		require.NoError(t, s.Push(prim("id")))
	}
	var buf bytes.Buffer
	_, err := s.DebugPrint(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Stack Trace [24 frames, 12 user calls -- entrypoint last]:\n")
	assert.Contains(t, out, "  test.col:12:1: f11 (user)\n")
	assert.Contains(t, out, "  ... 2 more\n")
	assert.NotContains(t, out, "f0 ")

	s.Reset()
	assert.Equal(t, 0, s.Height())
}
