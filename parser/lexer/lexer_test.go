// Copyright © 2024 The col authors

package lexer

import (
	"errors"
	"testing"

	"github.com/bieber/col/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) ([]*token.Token, *Lexer) {
	lex := New("test", []byte(input))
	var toks []*token.Token
	for i := 0; ; i++ {
		if i > 1000 {
			t.Fatalf("lexer did not terminate on %q", input)
		}
		tok := lex.ReadToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || tok.Type == token.ERROR {
			return toks, lex
		}
	}
}

func types(toks []*token.Token) []token.Type {
	typs := make([]token.Type, len(toks))
	for i := range toks {
		typs[i] = toks[i].Type
	}
	return typs
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input string
		types []token.Type
		texts []string
	}{
		{``, []token.Type{token.EOF}, nil},
		{`# only a comment`, []token.Type{token.EOF}, nil},
		{`main = id`,
			[]token.Type{token.IDENT, token.ASSIGN, token.IDENT, token.EOF},
			[]string{"main", "=", "id"}},
		{`<>(){},=:`,
			[]token.Type{token.OPEN_SEQ, token.CLOSE_SEQ, token.OPEN_SPEC, token.CLOSE_SPEC,
				token.OPEN_FORM, token.CLOSE_FORM, token.SEPARATOR, token.ASSIGN, token.APPLY, token.EOF},
			[]string{"<", ">", "(", ")", "{", "}", ",", "=", ":"}},
		{`1+ 1- + - * / ! _x a.b`,
			[]token.Type{token.IDENT, token.IDENT, token.IDENT, token.IDENT, token.IDENT,
				token.IDENT, token.IDENT, token.IDENT, token.IDENT, token.EOF},
			[]string{"1+", "1-", "+", "-", "*", "/", "!", "_x", "a.b"}},
		{`10 -5 +3 0.1 12e12 12e-12 12.02E+5`,
			[]token.Type{token.INT, token.INT, token.INT, token.FLOAT, token.FLOAT,
				token.FLOAT, token.FLOAT, token.EOF},
			[]string{"10", "-5", "+3", "0.1", "12e12", "12e-12", "12.02E+5"}},
		{`. e 1e 1.5.3`,
			[]token.Type{token.IDENT, token.IDENT, token.IDENT, token.IDENT, token.EOF},
			[]string{".", "e", "1e", "1.5.3"}},
		{`true false bottom truth`,
			[]token.Type{token.TRUE, token.FALSE, token.BOTTOM, token.IDENT, token.EOF},
			[]string{"true", "false", "bottom", "truth"}},
		{`const(<1, 'a'>) # trailing comment
x`,
			[]token.Type{token.IDENT, token.OPEN_SPEC, token.OPEN_SEQ, token.INT, token.SEPARATOR,
				token.CHAR, token.CLOSE_SEQ, token.CLOSE_SPEC, token.IDENT, token.EOF},
			[]string{"const", "(", "<", "1", ",", "'a'", ">", ")", "x"}},
	}
	for i, test := range tests {
		toks, lex := lexAll(t, test.input)
		assert.Equal(t, test.types, types(toks), "test %d: %q", i, test.input)
		assert.Equal(t, END_OF_INPUT, lex.State(), "test %d", i)
		for j, text := range test.texts {
			if j < len(toks) {
				assert.Equal(t, text, toks[j].Text, "test %d token %d", i, j)
			}
		}
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
		value interface{}
	}{
		{`42`, token.INT, 42},
		{`-7`, token.INT, -7},
		{`2.5`, token.FLOAT, 2.5},
		{`1e3`, token.FLOAT, 1000.0},
		{`'a'`, token.CHAR, 'a'},
		{`'\n'`, token.CHAR, '\n'},
		{`'\''`, token.CHAR, '\''},
		{`'\\'`, token.CHAR, '\\'},
		{`'λ'`, token.CHAR, 'λ'},
		{`"hello"`, token.STRING, "hello"},
		{`""`, token.STRING, ""},
		{`"a\tb\n\"c\"\\"`, token.STRING, "a\tb\n\"c\"\\"},
		{`"it\'s"`, token.STRING, "it's"},
		{`true`, token.TRUE, true},
		{`false`, token.FALSE, false},
	}
	for _, test := range tests {
		lex := New("test", []byte(test.input))
		require.True(t, lex.Next(), "input %q: %v", test.input, lex.Err())
		tok := lex.Token()
		assert.Equal(t, test.typ, tok.Type, "input %q", test.input)
		assert.Equal(t, test.value, tok.Literal, "input %q", test.input)
		assert.False(t, lex.Next())
		assert.Equal(t, END_OF_INPUT, lex.State())
	}
}

func TestLexerUnrecognized(t *testing.T) {
	for _, input := range []string{
		`1.5e`,
		`1.e+`,
		`"unterminated`,
		"\"line\nbreak\"",
		`'a`,
		`''`,
		`'ab'`,
		`'\q'`,
		`"\x41"`,
		`'\"'`,
		`99999999999999999999999`,
		`@`,
		"x \xff",
	} {
		toks, lex := lexAll(t, input)
		assert.Equal(t, token.ERROR, toks[len(toks)-1].Type, "input %q", input)
		assert.Equal(t, UNRECOGNIZED_TOKEN, lex.State(), "input %q", input)
		var lerr *token.LocationError
		assert.True(t, errors.As(lex.Err(), &lerr), "input %q", input)
	}
}

func TestLexerSticky(t *testing.T) {
	lex := New("test", []byte(`a @ b`))
	require.True(t, lex.Next())
	assert.False(t, lex.Next())
	assert.Equal(t, UNRECOGNIZED_TOKEN, lex.State())
	errTok := lex.Token()
	for i := 0; i < 3; i++ {
		assert.False(t, lex.Next())
		assert.Same(t, errTok, lex.Token())
		assert.Equal(t, token.ERROR, lex.ReadToken().Type)
	}

	lex.Init([]byte(`b`))
	assert.Equal(t, OK, lex.State())
	assert.NoError(t, lex.Err())
	require.True(t, lex.Next())
	assert.Equal(t, "b", lex.Token().Text)
	assert.Equal(t, 1, lex.Token().Source.Line)
	assert.Equal(t, 1, lex.Token().Source.Col)

	assert.False(t, lex.Next())
	assert.Equal(t, END_OF_INPUT, lex.State())
	for i := 0; i < 3; i++ {
		assert.False(t, lex.Next())
		assert.Equal(t, token.EOF, lex.ReadToken().Type)
	}
}

func TestLexerPositions(t *testing.T) {
	toks, _ := lexAll(t, "ab\ncd")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Source.Line)
	assert.Equal(t, 1, toks[0].Source.Col)
	assert.Equal(t, 2, toks[1].Source.Line)
	assert.Equal(t, 1, toks[1].Source.Col)

	toks, _ = lexAll(t, "  x = \"λλ\" y\n\t# c\n  {z}")
	pos := func(i int) [2]int { return [2]int{toks[i].Source.Line, toks[i].Source.Col} }
	assert.Equal(t, [2]int{1, 3}, pos(0))
	assert.Equal(t, [2]int{1, 5}, pos(1))
	assert.Equal(t, [2]int{1, 7}, pos(2))
	assert.Equal(t, [2]int{1, 12}, pos(3))
	assert.Equal(t, [2]int{3, 3}, pos(4))
	assert.Equal(t, [2]int{3, 4}, pos(5))
	assert.Equal(t, "test:3:4", toks[5].Source.String())
}

func TestLexerCounters(t *testing.T) {
	lex := New("test", []byte(`<<( {`))
	for lex.Next() {
	}
	assert.Equal(t, 2, lex.OpenSeq)
	assert.Equal(t, 1, lex.OpenSpec)
	assert.Equal(t, 1, lex.OpenForm)

	// mismatches are not the lexer's concern
	lex.Init([]byte(`> ) }`))
	for lex.Next() {
	}
	assert.Equal(t, END_OF_INPUT, lex.State())
	assert.Equal(t, -1, lex.OpenSeq)
	assert.Equal(t, -1, lex.OpenSpec)
	assert.Equal(t, -1, lex.OpenForm)
}

func TestLexerDoc(t *testing.T) {
	toks, _ := lexAll(t, "# header\n\n# Doubles a number.\n#   @trace{double}\ndouble = id # trailing\nx = id")
	require.Len(t, toks, 7)
	assert.Equal(t, "Doubles a number.\n@trace{double}", toks[0].Doc)
	assert.Equal(t, "", toks[1].Doc)
	assert.Equal(t, "", toks[3].Doc)

	toks, _ = lexAll(t, "x = id\n# about y\ny = id")
	require.Len(t, toks, 7)
	assert.Equal(t, "about y", toks[3].Doc)
}
