// Copyright © 2024 The col authors

package cmd

import (
	"strings"
	"testing"

	"github.com/bieber/col/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestProgram(path string) (*parser.Program, error) {
	return parser.LoadFile(path)
}

func TestDocCommand_DefaultFlags(t *testing.T) {
	cmd := DocCommand()
	assert.Equal(t, "doc [flags] [NAME]", cmd.Use)

	for _, name := range []string{"source-file", "guide"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDocIndex(t *testing.T) {
	res := execute(t, "", []string{"doc"})
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "Primitives:\n  +  "), res.stdout)
	assert.Contains(t, res.stdout, "\nForms:\n")
	assert.Contains(t, res.stdout, "compose{f1, ..., fn}")
	assert.NotContains(t, res.stdout, "Definitions:")

	res = execute(t, "", []string{"doc", "-f", "../examples/factorial.col"})
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "\nDefinitions:\n")
	assert.Contains(t, res.stdout, "  le1")
}

func TestDocName(t *testing.T) {
	res := execute(t, "", []string{"doc", "reduce"})
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "form reduce{f}\n  Folds a Sequence from the left."), res.stdout)

	res = execute(t, "", []string{"doc", "const"})
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "primitive const const(n): x\n  "), res.stdout)

	res = execute(t, "", []string{"doc", "-f", "../examples/factorial.col", "main"})
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "function main = compose{println, str, fact, int, head}\n"), res.stdout)
	assert.Contains(t, res.stdout, "  defined at ../examples/factorial.col:7:1\n")

	res = execute(t, "", []string{"doc", "nope"})
	assert.EqualError(t, res.err, "no documentation for nope")

	res = execute(t, "", []string{"doc", "-f", "../examples/missing.col", "main"})
	assertFailed(t, res)
}

func TestDocGuide(t *testing.T) {
	res := execute(t, "", []string{"doc", "--guide"})
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "# The col language\n"))
}

func TestCleanDoc(t *testing.T) {
	doc := strings.Repeat("word ", 20) + "\nend\n\nsecond paragraph"
	got := cleanDoc(doc)
	lines := strings.Split(got, "\n")
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), docWidth+2)
		if line != "" {
			assert.True(t, strings.HasPrefix(line, "  "), "%q", line)
		}
	}
	assert.Contains(t, got, "  second paragraph")
	assert.Equal(t, "", cleanDoc("  \n"))
}
