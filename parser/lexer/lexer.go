// Copyright © 2024 The col authors

// Package lexer converts col source text into a stream of tokens.
package lexer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/bieber/col/parser/token"
)

// State is the condition of a Lexer.  END_OF_INPUT and UNRECOGNIZED_TOKEN are
// terminal: once entered, Next does nothing until the lexer is reinitialized.
type State uint

const (
	OK State = iota
	END_OF_INPUT
	UNRECOGNIZED_TOKEN
)

func (s State) String() string {
	switch s {
	case OK:
		return "ok"
	case END_OF_INPUT:
		return "end of input"
	case UNRECOGNIZED_TOKEN:
		return "unrecognized token"
	}
	return "invalid"
}

const wordSymbols = "+-*/!_."

var (
	numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
	// a fractional number whose exponent has no digits
	badExponentPattern = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]*[eE][+-]?$`)
)

var reserved = map[string]token.Type{
	"true":   token.TRUE,
	"false":  token.FALSE,
	"bottom": token.BOTTOM,
}

// Lexer produces one token at a time from a source text.
type Lexer struct {
	scanner *token.Scanner
	state   State
	tok     *token.Token
	err     error
	doc     []string

	OpenSeq  int
	OpenSpec int
	OpenForm int
}

// New returns a Lexer positioned at the start of src.  The file name is used
// in token locations.
func New(file string, src []byte) *Lexer {
	lex := &Lexer{scanner: token.NewScanner(file, src)}
	lex.Init(src)
	return lex
}

// Init resets lex to the beginning of src at line 1, column 1 and clears any
// error state.
func (lex *Lexer) Init(src []byte) {
	lex.scanner.Reset(src)
	lex.state = OK
	lex.tok = nil
	lex.err = nil
	lex.doc = lex.doc[:0]
	lex.OpenSeq = 0
	lex.OpenSpec = 0
	lex.OpenForm = 0
}

// SetPath records the physical location of the source in token locations.
func (lex *Lexer) SetPath(path string) {
	lex.scanner.SetPath(path)
}

// State returns the current lexer state.
func (lex *Lexer) State() State {
	return lex.state
}

// Token returns the most recently lexed token.  Token returns nil before the
// first call to Next.
func (lex *Lexer) Token() *token.Token {
	return lex.tok
}

// Err returns a *token.LocationError describing an unrecognized token.
func (lex *Lexer) Err() error {
	return lex.err
}

// Next advances lex by one token and returns true if a token was produced.
// Next is a no-op once lex has entered a terminal state.
func (lex *Lexer) Next() bool {
	if lex.state != OK {
		return false
	}
	lex.readToken()
	return lex.state == OK
}

// ReadToken advances lex and returns the token produced.  At the end of input
// ReadToken returns a token of type token.EOF and after a lexing failure it
// returns a token of type token.ERROR, on every subsequent call.
func (lex *Lexer) ReadToken() *token.Token {
	lex.Next()
	switch lex.state {
	case END_OF_INPUT:
		return &token.Token{Type: token.EOF, Source: lex.tok.Source}
	case UNRECOGNIZED_TOKEN:
		return &token.Token{Type: token.ERROR, Text: errors.Unwrap(lex.err).Error(), Source: lex.tok.Source}
	}
	return lex.tok
}

func (lex *Lexer) readToken() {
	lex.skipIgnored()
	if lex.scanner.EOF() {
		lex.state = END_OF_INPUT
		lex.tok = lex.scanner.EmitToken(token.EOF)
		return
	}
	if err := lex.scanner.ScanRune(); err != nil {
		lex.fail(err)
		return
	}
	switch c := lex.scanner.Rune(); c {
	case '<':
		lex.OpenSeq++
		lex.emit(token.OPEN_SEQ)
	case '>':
		lex.OpenSeq--
		lex.emit(token.CLOSE_SEQ)
	case '(':
		lex.OpenSpec++
		lex.emit(token.OPEN_SPEC)
	case ')':
		lex.OpenSpec--
		lex.emit(token.CLOSE_SPEC)
	case '{':
		lex.OpenForm++
		lex.emit(token.OPEN_FORM)
	case '}':
		lex.OpenForm--
		lex.emit(token.CLOSE_FORM)
	case ',':
		lex.emit(token.SEPARATOR)
	case '=':
		lex.emit(token.ASSIGN)
	case ':':
		lex.emit(token.APPLY)
	case '\'':
		lex.readChar()
	case '"':
		lex.readString()
	default:
		if isWord(c) {
			lex.readWord()
			return
		}
		lex.errorf("unexpected character %q", c)
	}
}

// skipIgnored consumes whitespace and comments.  The text of a block of
// whole line comments is kept for the next token unless a blank line follows
// it.
func (lex *Lexer) skipIgnored() {
	lex.doc = lex.doc[:0]
	trailing := lex.tok != nil
	for {
		lex.scanner.AcceptSeqSpace()
		switch n := strings.Count(lex.scanner.Text(), "\n"); {
		case n > 1:
			lex.doc = lex.doc[:0]
			fallthrough
		case n > 0:
			trailing = false
		}
		lex.scanner.Ignore()
		if !lex.scanner.AcceptRune('#') {
			break
		}
		lex.scanner.Ignore()
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		if !trailing {
			lex.doc = append(lex.doc, strings.TrimSpace(lex.scanner.Text()))
		}
		lex.scanner.Ignore()
	}
}

func (lex *Lexer) emit(typ token.Type) *token.Token {
	lex.tok = lex.scanner.EmitToken(typ)
	if len(lex.doc) > 0 {
		lex.tok.Doc = strings.Join(lex.doc, "\n")
	}
	return lex.tok
}

func (lex *Lexer) fail(err error) {
	lex.tok = lex.scanner.EmitToken(token.ERROR)
	lex.state = UNRECOGNIZED_TOKEN
	lex.err = &token.LocationError{Err: err, Source: lex.tok.Source}
}

func (lex *Lexer) errorf(format string, v ...interface{}) {
	lex.fail(fmt.Errorf(format, v...))
}

func (lex *Lexer) readWord() {
	lex.scanner.AcceptSeq(isWord)
	text := lex.scanner.Text()
	switch {
	case numberPattern.MatchString(text):
		lex.readNumber(text)
	case badExponentPattern.MatchString(text):
		lex.errorf("invalid floating point literal: %s", text)
	default:
		typ, ok := reserved[text]
		if !ok {
			lex.emit(token.IDENT)
			return
		}
		tok := lex.emit(typ)
		switch typ {
		case token.TRUE:
			tok.Literal = true
		case token.FALSE:
			tok.Literal = false
		}
	}
}

func (lex *Lexer) readNumber(text string) {
	if !strings.ContainsAny(text, ".eE") {
		x, err := strconv.Atoi(text)
		if err != nil {
			lex.errorf("integer literal overflows int: %s", text)
			return
		}
		lex.emit(token.INT).Literal = x
		return
	}
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		lex.errorf("float literal out of range: %s", text)
		return
	}
	lex.emit(token.FLOAT).Literal = x
}

func (lex *Lexer) readChar() {
	c, ok := lex.readLiteralRune('\'')
	if !ok {
		return
	}
	if c == '\'' && lex.scanner.Text() == "''" {
		lex.errorf("empty character literal")
		return
	}
	if !lex.scanner.AcceptRune('\'') {
		lex.errorf("unterminated character literal")
		return
	}
	lex.emit(token.CHAR).Literal = c
}

func (lex *Lexer) readString() {
	var buf strings.Builder
	for {
		if lex.scanner.AcceptRune('"') {
			lex.emit(token.STRING).Literal = buf.String()
			return
		}
		c, ok := lex.readLiteralRune('"')
		if !ok {
			return
		}
		buf.WriteRune(c)
	}
}

// readLiteralRune scans one possibly escaped rune inside a quoted literal.
// The unescaped closing quote is returned as is and left for the caller to
// interpret.
func (lex *Lexer) readLiteralRune(quote rune) (rune, bool) {
	if lex.scanner.EOF() {
		lex.errorf("unterminated literal")
		return 0, false
	}
	if err := lex.scanner.ScanRune(); err != nil {
		lex.fail(err)
		return 0, false
	}
	c := lex.scanner.Rune()
	switch c {
	case '\n':
		lex.errorf("newline in literal")
		return 0, false
	case '\\':
	default:
		return c, true
	}
	if lex.scanner.EOF() {
		lex.errorf("unterminated literal")
		return 0, false
	}
	if err := lex.scanner.ScanRune(); err != nil {
		lex.fail(err)
		return 0, false
	}
	switch esc := lex.scanner.Rune(); esc {
	case '\\':
		return '\\', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\'':
		return '\'', true
	case '"':
		if quote == '"' {
			return '"', true
		}
	}
	lex.errorf("unknown escape sequence \\%c", lex.scanner.Rune())
	return 0, false
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || strings.ContainsRune(wordSymbols, c)
}
