// Copyright © 2024 The col authors

package rdparser

import (
	"fmt"

	"github.com/bieber/col/parser/token"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint

// Possible ErrorKind values.
const (
	LexError ErrorKind = iota
	ExpectedIdent
	ExpectedAssign
	ExpectedArgs
	ExpectedConstant
	ExpectedClose
	UnexpectedEnd
	InvalidElement
	numErrorKinds
)

func (k ErrorKind) String() string {
	kindStrings := [numErrorKinds]string{
		LexError:         "unrecognized token",
		ExpectedIdent:    "expected identifier",
		ExpectedAssign:   "expected assignment",
		ExpectedArgs:     "expected arguments",
		ExpectedConstant: "expected constant",
		ExpectedClose:    "expected closing bracket",
		UnexpectedEnd:    "unexpected end of input",
		InvalidElement:   "invalid list element",
	}
	if k >= numErrorKinds {
		return "parse error"
	}
	return kindStrings[k]
}

// ParseError is a fatal error encountered while parsing.  Source is the
// location of the offending token.
type ParseError struct {
	Kind   ErrorKind
	Source *token.Location
	Token  *token.Token
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
