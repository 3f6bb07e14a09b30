// Copyright © 2024 The col authors

package token

import "fmt"

// Token is one lexical element of a col source text.
type Token struct {
	Type Type
	Text string
	// Literal holds the decoded value of a literal token: an int for INT, a
	// float64 for FLOAT, a rune for CHAR, a string for STRING and a bool for
	// TRUE/FALSE.  Literal is nil for every other type.
	Literal interface{}
	Source  *Location
	// Doc holds the comment lines immediately preceding the token.
	Doc string
}

func (tok *Token) String() string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case ERROR:
		return tok.Text
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

type Type uint

// Type constants used by the col lexer and parser.  ERROR and EOF never
// appear in a well formed token stream except as its final element.
const (
	NONE Type = iota
	ERROR
	EOF

	// Literals
	INT
	FLOAT
	CHAR
	STRING
	BOTTOM
	TRUE
	FALSE

	IDENT

	// Delimiters
	OPEN_SEQ
	CLOSE_SEQ
	OPEN_SPEC
	CLOSE_SPEC
	OPEN_FORM
	CLOSE_FORM
	SEPARATOR
	ASSIGN

	// APPLY separates a function from its argument in interactive input.
	APPLY

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		NONE:       "none",
		ERROR:      "error",
		EOF:        "EOF",
		INT:        "integer",
		FLOAT:      "float",
		CHAR:       "character",
		STRING:     "string",
		BOTTOM:     "bottom",
		TRUE:       "true",
		FALSE:      "false",
		IDENT:      "identifier",
		OPEN_SEQ:   "<",
		CLOSE_SEQ:  ">",
		OPEN_SPEC:  "(",
		CLOSE_SPEC: ")",
		OPEN_FORM:  "{",
		CLOSE_FORM: "}",
		SEPARATOR:  ",",
		ASSIGN:     "=",
		APPLY:      ":",
	}
	if typ >= numTokenTypes {
		return typeStrings[NONE]
	}
	return typeStrings[typ]
}

// IsLiteral returns true if typ begins a constant expression.
func (typ Type) IsLiteral() bool {
	switch typ {
	case INT, FLOAT, CHAR, STRING, BOTTOM, TRUE, FALSE, OPEN_SEQ:
		return true
	}
	return false
}

type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int    // byte offset
	Line int    // line number (starting at 1 when tracked)
	Col  int    // rune column (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
