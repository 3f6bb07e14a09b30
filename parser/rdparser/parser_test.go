// Copyright © 2024 The col authors

package rdparser

import (
	"errors"
	"testing"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(source string) (*lang.SymbolTable, *Parser, error) {
	p := New(lexer.New("test", []byte(source)))
	table, err := p.Parse()
	return table, p, err
}

func TestParser(t *testing.T) {
	tests := []struct {
		source string
		name   string
		output string
	}{
		{`main = id`, "main", `id`},
		{`main = const(5)`, "main", `const(5)`},
		{`main = const()`, "main", `const`},
		{`main = const(<1, 2.5, 'c', "s", true, false, bottom>)`, "main", `const(<1, 2.5, 'c', "s", true, false, bottom>)`},
		{`main = const(<<>, <<1>>>)`, "main", `const(<<>, <<1>>>)`},
		{`main = compose{1+, 1+}`, "main", `compose{1+, 1+}`},
		{`main = compose{f, construct{id, const(1)}}`, "main", `compose{f, construct{id, const(1)}}`},
		{`main = helper`, "main", `helper`},
		{"# comment\nx = map{reduce{+}}\n", "x", `map{reduce{+}}`},
		{`main = const("a\"b\n")`, "main", `const("a\"b\n")`},
	}
	for i, test := range tests {
		table, _, err := parse(test.source)
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		fn, ok := table.Find(test.name)
		if assert.True(t, ok, "test %d", i) {
			assert.Equal(t, test.output, fn.String(), "test %d", i)
		}
	}
}

func TestParserClassification(t *testing.T) {
	table, _, err := parse(`main = compose{const(1), helper}`)
	require.NoError(t, err)
	main, ok := table.Find("main")
	require.True(t, ok)
	assert.Equal(t, lang.KindForm, main.Kind)
	idx, _ := lang.LookupForm("compose")
	assert.Equal(t, idx, main.Index)

	args := main.Arguments()
	require.Len(t, args, 2)
	assert.Equal(t, lang.KindPrimitive, args[0].Kind)
	idx, _ = lang.LookupPrimitive("const")
	assert.Equal(t, idx, args[0].Index)
	require.Len(t, args[0].Specializers(), 1)
	assert.True(t, lang.Equal(lang.IntValue(1), args[0].Specializers()[0]))
	assert.Equal(t, lang.KindUser, args[1].Kind)
	assert.Equal(t, "helper", args[1].Name)

	// descriptors remember where they came from
	require.NotNil(t, args[1].Source)
	assert.Equal(t, 1, args[1].Source.Line)
	assert.Equal(t, 26, args[1].Source.Col)
}

func TestParserEmpty(t *testing.T) {
	table, _, err := parse("  # nothing here\n")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		source string
		kind   ErrorKind
		line   int
		col    int
	}{
		{`x = {`, ExpectedIdent, 1, 5},
		{`x = compose{`, UnexpectedEnd, 1, 13},
		{`x = compose`, UnexpectedEnd, 1, 12},
		{`x = compose{}`, ExpectedArgs, 1, 12},
		{`x = compose id`, ExpectedArgs, 1, 13},
		{`x = compose{id id}`, InvalidElement, 1, 16},
		{`x = compose{id)`, ExpectedClose, 1, 15},
		{`x = const(1 2)`, InvalidElement, 1, 13},
		{`x = const(id)`, ExpectedConstant, 1, 11},
		{`x = const(<1,>)`, ExpectedConstant, 1, 14},
		{`x = const(<1`, UnexpectedEnd, 1, 13},
		{`x id`, ExpectedAssign, 1, 3},
		{`= id`, ExpectedIdent, 1, 1},
		{`x =`, UnexpectedEnd, 1, 4},
		{"x = id\ny = @", LexError, 2, 5},
		{`x = const("open)`, LexError, 1, 11},
		{`x = id : 5`, ExpectedIdent, 1, 8},
	}
	for i, test := range tests {
		table, _, err := parse(test.source)
		assert.Nil(t, table, "test %d", i)
		var perr *ParseError
		if !assert.True(t, errors.As(err, &perr), "test %d: %v", i, err) {
			continue
		}
		assert.Equal(t, test.kind, perr.Kind, "test %d: %v", i, err)
		if assert.NotNil(t, perr.Source, "test %d", i) {
			assert.Equal(t, test.line, perr.Source.Line, "test %d: %v", i, err)
			assert.Equal(t, test.col, perr.Source.Col, "test %d: %v", i, err)
		}
	}
}

func TestParserErrorMessage(t *testing.T) {
	_, _, err := parse(`x = compose{}`)
	require.Error(t, err)
	assert.Equal(t, "test:1:12: expected arguments: form compose requires at least one argument", err.Error())
}

func TestParserRedefinition(t *testing.T) {
	table, p, err := parse("x = const(1)\ny = id\nx = const(2)")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	fn, ok := table.Find("x")
	require.True(t, ok)
	assert.Equal(t, "const(2)", fn.String())

	require.Len(t, p.Redefined(), 1)
	assert.Equal(t, "x", p.Redefined()[0].Name)
	assert.Equal(t, 3, p.Redefined()[0].Source.Line)
	assert.Len(t, p.Definitions(), 3)
}

func TestParseStatement(t *testing.T) {
	p := New(lexer.New("repl", []byte(`double = compose{*, construct{id, const(2)}}`)))
	stmt, err := p.ParseStatement()
	require.NoError(t, err)
	assert.Equal(t, "double", stmt.Name)
	assert.Nil(t, stmt.Input)
	assert.NoError(t, p.ExpectEOF())

	p = New(lexer.New("repl", []byte(`map{1+} : <1, 2, 3>`)))
	stmt, err = p.ParseStatement()
	require.NoError(t, err)
	assert.Equal(t, "", stmt.Name)
	assert.Equal(t, "map{1+}", stmt.Fun.String())
	assert.Equal(t, "<1, 2, 3>", stmt.Input.String())

	p = New(lexer.New("repl", []byte(`id : 1 2`)))
	_, err = p.ParseStatement()
	require.NoError(t, err)
	assert.Error(t, p.ExpectEOF())

	p = New(lexer.New("repl", []byte(`id 1`)))
	_, err = p.ParseStatement()
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ExpectedAssign, perr.Kind)
}

func TestTokenSlice(t *testing.T) {
	loc := &token.Location{File: "slice", Line: 1, Col: 1}
	src := NewTokenStreamSource(TokenSlice([]*token.Token{
		{Type: token.IDENT, Text: "main", Source: loc},
		{Type: token.ASSIGN, Text: "=", Source: loc},
		{Type: token.IDENT, Text: "id", Source: loc},
	}))
	table, err := NewFromSource(src).Parse()
	require.NoError(t, err)
	fn, ok := table.Find("main")
	require.True(t, ok)
	assert.Equal(t, lang.KindPrimitive, fn.Kind)
	assert.True(t, src.IsEOF())
	assert.False(t, src.Scan())
}

func TestParserDoc(t *testing.T) {
	table, p, err := parse("# Adds one.\ninc = 1+\n\n# unattached\n\ndec = 1-")
	require.NoError(t, err)
	fn, ok := table.Find("inc")
	require.True(t, ok)
	assert.Equal(t, "Adds one.", fn.Doc)
	assert.Equal(t, "Adds one.", p.Definitions()[0].Doc)
	fn, ok = table.Find("dec")
	require.True(t, ok)
	assert.Equal(t, "", fn.Doc)
}
