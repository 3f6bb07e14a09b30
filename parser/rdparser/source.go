// Copyright © 2024 The col authors

package rdparser

import (
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/token"
)

// TokenStream is an arbitrary sequence of tokens.  Typically, a TokenStream
// will be a *lexer.Lexer but other implementations may be desirable for
// testing or for feeding the parser from an editor buffer.
type TokenStream interface {
	// ReadToken returns the next token from an input source.  When no more
	// tokens can be generated ReadToken returns a token with type token.EOF.
	// After a lexing failure a TokenStream must return a token with type
	// token.ERROR whenever called.
	ReadToken() *token.Token
}

// TokenGenerator implements TokenStream.  The function will be called any time
// a TokenSource wants a token.
type TokenGenerator func() *token.Token

// ReadToken implements TokenStream.
func (fn TokenGenerator) ReadToken() *token.Token {
	return fn()
}

// TokenSlice returns a TokenStream that produces toks followed by an endless
// stream of EOF tokens.
func TokenSlice(toks []*token.Token) TokenStream {
	pos := &token.Location{}
	return TokenGenerator(func() *token.Token {
		if len(toks) == 0 {
			return &token.Token{Type: token.EOF, Source: pos}
		}
		tok := toks[0]
		toks = toks[1:]
		if tok.Source != nil {
			pos = tok.Source
		}
		return tok
	})
}

// TokenSource abstracts a TokenStream by adding one token of lookahead.
type TokenSource struct {
	lex   TokenStream
	Token *token.Token
	peek  *token.Token
}

// NewTokenStreamSource returns a TokenSource reading from stream.
func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{
		lex: stream,
	}
}

// NewTokenSource returns a TokenSource reading tokens from lex.
func NewTokenSource(lex *lexer.Lexer) *TokenSource {
	return NewTokenStreamSource(lex)
}

// Peek returns the next token without consuming it.
func (s *TokenSource) Peek() *token.Token {
	if s.peek == nil {
		s.peek = s.lex.ReadToken()
	}
	return s.peek
}

// Accept consumes the next token if fn returns true for it.
func (s *TokenSource) Accept(fn func(*token.Token) bool) bool {
	if fn(s.Peek()) {
		s.scan()
		return true
	}
	return false
}

// AcceptType consumes the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan consumes the next token.  Scan returns false at the end of the stream
// and after a lexing failure, leaving the terminal token in s.Token.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() || s.Peek().Type == token.ERROR {
		s.Token = s.Peek()
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true if the stream has no more tokens.
func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek()
	s.peek = nil
}
