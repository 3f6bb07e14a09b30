// Copyright © 2024 The col authors

package profiler_test

import (
	"testing"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/stretchr/testify/require"
)

// testCol returns 9 for the input 5 after three calls to recurse and two to
// add.
const testCol = `
# Adds three.
# @trace{ Add It }
add = compose{+, construct{id, const(3)}}

recurse = if{compose{lt, construct{id, const(4)}}, add, compose{recurse, 1-}}

main = compose{add, recurse}
`

func loadRuntime(t *testing.T, src string) *lang.Runtime {
	table, err := parser.Load("test.col", []byte(src))
	require.NoError(t, err)
	return lang.NewRuntime(table)
}

func runMain(t *testing.T, rt *lang.Runtime) *lang.Value {
	out, err := rt.RunMainValue(lang.IntValue(5))
	require.NoError(t, err)
	require.Equal(t, "9", out.String())
	return out
}
