// Copyright © 2024 The col authors

// Package rdparser implements a recursive descent parser for col programs.
package rdparser

import (
	"errors"
	"fmt"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/token"
)

// Definition is a top level definition read by a Parser.
type Definition struct {
	Name string
	// Source is the location of the defined name.
	Source *token.Location
	Fun    *lang.Function
	Doc    string
}

// Statement is one line of interactive input: either a definition or the
// application of a function to a constant.
type Statement struct {
	// Name is set when the statement is a definition.
	Name string
	Fun  *lang.Function
	// Input is set when the statement is an application.
	Input  *lang.Value
	Source *token.Location
}

// Parser is a col parser.
type Parser struct {
	src       *TokenSource
	defs      []*Definition
	redefined []*Definition
	seen      map[string]bool
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src:  src,
		seen: make(map[string]bool),
	}
}

// New initializes and returns a new Parser that reads tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	return NewFromSource(NewTokenSource(lex))
}

// Parse reads definitions until the end of input and returns a table
// containing them.  Any error aborts the parse and no table is returned.
func (p *Parser) Parse() (*lang.SymbolTable, error) {
	table := lang.NewSymbolTable()
	for !p.src.IsEOF() {
		def, err := p.ParseDefinition()
		if err != nil {
			table.Delete()
			return nil, err
		}
		table.Add(def.Name, def.Fun)
	}
	return table, nil
}

// Definitions returns every definition parsed so far, in source order.
func (p *Parser) Definitions() []*Definition {
	return p.defs
}

// Redefined returns the definitions which reuse a name defined earlier in
// the same input.
func (p *Parser) Redefined() []*Definition {
	return p.redefined
}

// ParseDefinition parses `name = function`.
func (p *Parser) ParseDefinition() (*Definition, error) {
	if !p.Accept(token.IDENT) {
		return nil, p.unexpected(ExpectedIdent, "definition must begin with a name")
	}
	name := p.src.Token
	if !p.Accept(token.ASSIGN) {
		return nil, p.unexpected(ExpectedAssign, "expected '=' after %s", name.Text)
	}
	fn, err := p.ParseFunction()
	if err != nil {
		return nil, err
	}
	return p.define(name, fn), nil
}

func (p *Parser) define(name *token.Token, fn *lang.Function) *Definition {
	def := &Definition{Name: name.Text, Source: name.Source, Fun: fn, Doc: name.Doc}
	fn.Doc = name.Doc
	p.defs = append(p.defs, def)
	if p.seen[def.Name] {
		p.redefined = append(p.redefined, def)
	}
	p.seen[def.Name] = true
	return def
}

// ParseFunction parses a function expression: a primitive with optional
// specializers, a form with its arguments, or a reference to a definition.
func (p *Parser) ParseFunction() (*lang.Function, error) {
	if !p.Accept(token.IDENT) {
		return nil, p.unexpected(ExpectedIdent, "expected function name")
	}
	return p.parseFunction(p.src.Token)
}

// parseFunction classifies the name token tok, which has already been
// consumed, and parses anything that must follow it.
func (p *Parser) parseFunction(tok *token.Token) (*lang.Function, error) {
	if i, ok := lang.LookupPrimitive(tok.Text); ok {
		fn := lang.NewPrimitive(i)
		fn.Source = tok.Source
		if !p.Accept(token.OPEN_SPEC) {
			return fn, nil
		}
		err := p.parseList(token.CLOSE_SPEC, func() error {
			v, err := p.ParseConstant()
			if err != nil {
				return err
			}
			fn.Spec.PushBack(v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
	if i, ok := lang.LookupForm(tok.Text); ok {
		fn := lang.NewForm(i)
		fn.Source = tok.Source
		if !p.Accept(token.OPEN_FORM) {
			return nil, p.unexpected(ExpectedArgs, "form %s requires arguments in braces", tok.Text)
		}
		open := p.src.Token
		err := p.parseList(token.CLOSE_FORM, func() error {
			arg, err := p.ParseFunction()
			if err != nil {
				return err
			}
			fn.Args.PushBack(arg)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if fn.Args.Len() == 0 {
			return nil, p.errorf(ExpectedArgs, open, "form %s requires at least one argument", tok.Text)
		}
		return fn, nil
	}
	fn := lang.NewUser(tok.Text)
	fn.Source = tok.Source
	return fn, nil
}

// ParseConstant parses a literal or a nested Sequence of literals.
func (p *Parser) ParseConstant() (*lang.Value, error) {
	switch p.PeekType() {
	case token.OPEN_SEQ:
		p.src.Scan()
		seq := lang.SeqValue()
		err := p.parseList(token.CLOSE_SEQ, func() error {
			v, err := p.ParseConstant()
			if err != nil {
				return err
			}
			seq.Seq.PushBack(v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return seq, nil
	case token.BOTTOM:
		p.src.Scan()
		return lang.BottomValue(), nil
	case token.INT:
		p.src.Scan()
		return lang.IntValue(p.src.Token.Literal.(int)), nil
	case token.FLOAT:
		p.src.Scan()
		return lang.FloatValue(p.src.Token.Literal.(float64)), nil
	case token.TRUE, token.FALSE:
		p.src.Scan()
		return lang.BoolValue(p.src.Token.Type == token.TRUE), nil
	case token.CHAR:
		p.src.Scan()
		return lang.CharValue(p.src.Token.Literal.(rune)), nil
	case token.STRING:
		p.src.Scan()
		return lang.StringValue(p.src.Token.Literal.(string)), nil
	}
	return nil, p.unexpected(ExpectedConstant, "expected constant")
}

// ParseStatement parses one line of interactive input, either `name =
// function` or `function : constant`.
func (p *Parser) ParseStatement() (*Statement, error) {
	if !p.Accept(token.IDENT) {
		return nil, p.unexpected(ExpectedIdent, "expected definition or function")
	}
	first := p.src.Token
	if p.Accept(token.ASSIGN) {
		fn, err := p.ParseFunction()
		if err != nil {
			return nil, err
		}
		def := p.define(first, fn)
		return &Statement{Name: def.Name, Fun: fn, Source: first.Source}, nil
	}
	fn, err := p.parseFunction(first)
	if err != nil {
		return nil, err
	}
	if !p.Accept(token.APPLY) {
		return nil, p.unexpected(ExpectedAssign, "expected '=' or ':'")
	}
	in, err := p.ParseConstant()
	if err != nil {
		return nil, err
	}
	return &Statement{Fun: fn, Input: in, Source: first.Source}, nil
}

// ExpectEOF returns an error if any input remains.
func (p *Parser) ExpectEOF() error {
	if p.src.IsEOF() {
		return nil
	}
	return p.unexpected(InvalidElement, "unexpected input after statement")
}

// parseList parses elements separated by commas until the close token.  The
// opening token must already be consumed.  An empty list is accepted.
func (p *Parser) parseList(close token.Type, elem func() error) error {
	if p.Accept(close) {
		return nil
	}
	for {
		if err := elem(); err != nil {
			return err
		}
		if p.Accept(close) {
			return nil
		}
		if p.Accept(token.SEPARATOR) {
			continue
		}
		switch p.PeekType() {
		case token.CLOSE_SEQ, token.CLOSE_SPEC, token.CLOSE_FORM:
			return p.unexpected(ExpectedClose, "expected %s", close)
		}
		return p.unexpected(InvalidElement, "expected ',' or %s", close)
	}
}

// PeekType returns the type of the next token.
func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

// Accept consumes the next token if it has one of the given types.
func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

// unexpected consumes the offending token and reports it.  Lexing failures
// and the end of input take precedence over kind.
func (p *Parser) unexpected(kind ErrorKind, format string, v ...interface{}) error {
	p.src.Scan()
	tok := p.src.Token
	switch tok.Type {
	case token.ERROR:
		return &ParseError{Kind: LexError, Source: tok.Source, Token: tok, Err: errors.New(tok.Text)}
	case token.EOF:
		return &ParseError{Kind: UnexpectedEnd, Source: tok.Source, Token: tok, Err: fmt.Errorf(format, v...)}
	}
	return p.errorf(kind, tok, format+" (found %s)", append(v, tok)...)
}

func (p *Parser) errorf(kind ErrorKind, tok *token.Token, format string, v ...interface{}) error {
	return &ParseError{
		Kind:   kind,
		Source: tok.Source,
		Token:  tok,
		Err:    fmt.Errorf(format, v...),
	}
}
