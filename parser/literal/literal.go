// Copyright © 2024 The col authors

// Package literal parses standalone col constants, such as the input given to
// a program on the command line.
//
//	value    := <keyword> | <number> | <char> | <string> | <sequence>
//	keyword  := true | false | bottom
//	number   := /[+-]?[0-9]+/ <fraction>? <exponent>?
//	fraction := '.' /[0-9]+/
//	exponent := e /[+-]?[0-9]+/
//	char     := "'" /[^'\\]|\\[\\nt']/ "'"
//	string   := '"' /([^"\\]|\\[\\nt"'])*/ '"'
//	sequence := '<' (<value> (',' <value>)*)? '>'
package literal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// SourceName is the file name reported in the locations of literal errors.
const SourceName = "<input>"

var grammar = newParsecParser()

// Parse parses text, which must contain exactly one constant.  Errors are
// *token.LocationError values that give the line and rune column of the
// failure.
func Parse(text string) (*lang.Value, error) {
	var far int
	root, s := grammar(&farScanner{Scanner: parsec.NewScanner([]byte(text)), far: &far})
	if root == nil {
		return nil, locate(text, errorAt(far, unexpected(text, far)))
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		pos := s.GetCursor()
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, locate(text, errorAt(pos, fmt.Errorf("unexpected text after constant: %s", b)))
	}
	switch v := root.(type) {
	case *lang.Value:
		return v, nil
	case error:
		return nil, locate(text, v)
	}
	return nil, locate(text, errorAt(0, fmt.Errorf("unexpected parse result %T", root)))
}

func unexpected(text string, pos int) error {
	if pos >= len(text) {
		return errors.New("unexpected end of input")
	}
	c, _ := utf8.DecodeRuneInString(text[pos:])
	return fmt.Errorf("unexpected %q", c)
}

func errorAt(pos int, err error) error {
	return &token.LocationError{
		Err:    err,
		Source: &token.Location{File: SourceName, Pos: pos},
	}
}

// locate fills in the line and rune column of a located error from its byte
// offset in text.
func locate(text string, err error) error {
	var lerr *token.LocationError
	if !errors.As(err, &lerr) || lerr.Source == nil || lerr.Source.Pos > len(text) {
		return err
	}
	before := text[:lerr.Source.Pos]
	lerr.Source.Line = strings.Count(before, "\n") + 1
	lerr.Source.Col = utf8.RuneCountInString(before[strings.LastIndexByte(before, '\n')+1:]) + 1
	return err
}

// farScanner records the furthest cursor position reached by any clone of
// the scanner, which is where a failed parse went wrong.
type farScanner struct {
	parsec.Scanner
	far *int
}

func (s *farScanner) mark() {
	if c := s.Scanner.GetCursor(); c > *s.far {
		*s.far = c
	}
}

func (s *farScanner) SetWSPattern(pattern string) parsec.Scanner {
	s.Scanner.SetWSPattern(pattern)
	return s
}

func (s *farScanner) TrackLineno() parsec.Scanner {
	s.Scanner.TrackLineno()
	return s
}

func (s *farScanner) Clone() parsec.Scanner {
	return &farScanner{Scanner: s.Scanner.Clone(), far: s.far}
}

func (s *farScanner) Match(pattern string) ([]byte, parsec.Scanner) {
	b, _ := s.Scanner.Match(pattern)
	s.mark()
	return b, s
}

func (s *farScanner) MatchString(str string) (bool, parsec.Scanner) {
	ok, _ := s.Scanner.MatchString(str)
	s.mark()
	return ok, s
}

func (s *farScanner) SubmatchAll(pattern string) (map[string][]byte, parsec.Scanner) {
	m, _ := s.Scanner.SubmatchAll(pattern)
	s.mark()
	return m, s
}

func (s *farScanner) SkipWS() ([]byte, parsec.Scanner) {
	b, _ := s.Scanner.SkipWS()
	s.mark()
	return b, s
}

func (s *farScanner) SkipAny(pattern string) ([]byte, parsec.Scanner) {
	b, _ := s.Scanner.SkipAny(pattern)
	s.mark()
	return b, s
}

func newParsecParser() parsec.Parser {
	openS := parsec.Atom("<", "OPENS")
	closeS := parsec.Atom(">", "CLOSES")
	comma := parsec.Atom(",", "COMMA")
	keyword := parsec.Token(`(?:true|false|bottom)\b`, "KEYWORD")
	decimal := parsec.Token(`[+-]?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`, "DECIMAL")
	term := parsec.OrdChoice(termNode, keyword, decimal)

	// quoted literals are matched in pieces so a bad body is located
	char := parsec.And(charNode,
		parsec.Atom("'", "QUOTE"),
		parsec.TokenExact(`(?:[^'\\\n]|\\[\\nt'])`, "CHAR"),
		parsec.AtomExact("'", "QUOTE"))
	str := parsec.And(stringNode,
		parsec.Atom(`"`, "DQUOTE"),
		parsec.TokenExact(`(?:[^"\\\n]|\\[\\nt"'])*`, "STRING"),
		parsec.AtomExact(`"`, "DQUOTE"))

	var value parsec.Parser // forward declaration allows nested sequences
	rest := parsec.Kleene(nil, parsec.And(nil, comma, &value))
	elems := parsec.Maybe(nil, parsec.And(nil, &value, rest))
	seq := parsec.And(seqNode, openS, elems, closeS)
	value = parsec.OrdChoice(firstNode, term, char, str, seq)
	return value
}

func firstNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return nodes[0]
}

func termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		return errorAt(0, fmt.Errorf("unexpected node %T", nodes[0]))
	}
	text := term.GetValue()
	switch term.GetName() {
	case "KEYWORD":
		switch text {
		case "true":
			return lang.BoolValue(true)
		case "false":
			return lang.BoolValue(false)
		}
		return lang.BottomValue()
	case "DECIMAL":
		if !strings.ContainsAny(text, ".eE") {
			x, err := strconv.Atoi(text)
			if err != nil {
				return errorAt(term.Position, fmt.Errorf("integer literal overflows int: %s", text))
			}
			return lang.IntValue(x)
		}
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return errorAt(term.Position, fmt.Errorf("float literal out of range: %s", text))
		}
		return lang.FloatValue(x)
	}
	return errorAt(term.Position, fmt.Errorf("unknown terminal %s", term.GetName()))
}

// body returns the text between the quotes of a quoted literal.
func body(nodes []parsec.ParsecNode) string {
	if term, ok := nodes[1].(*parsec.Terminal); ok {
		return unescape(term.GetValue())
	}
	return ""
}

func charNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	c, _ := utf8.DecodeRuneInString(body(nodes))
	return lang.CharValue(c)
}

func stringNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	return lang.StringValue(body(nodes))
}

func seqNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	seq := lang.SeqValue()
	if err := collect(nodes, seq); err != nil {
		return err
	}
	return seq
}

// collect appends the values found in nodes to seq.  Punctuation is skipped
// and the first error found is returned.
func collect(node parsec.ParsecNode, seq *lang.Value) error {
	switch node := node.(type) {
	case *lang.Value:
		seq.Seq.PushBack(node)
	case error:
		return node
	case []parsec.ParsecNode:
		for _, n := range node {
			if err := collect(n, seq); err != nil {
				return err
			}
		}
	}
	return nil
}

// unescape decodes the escape sequences accepted by the grammar.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			buf.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		default:
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}
