// Copyright © 2024 The col authors

package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bieber/col/diagnostic"
	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/literal"
	"github.com/bieber/col/parser/rdparser"
	"github.com/bieber/col/parser/token"
	"github.com/sirupsen/logrus"
)

// inputName is the source name given to interactive input.
const inputName = "repl"

const helpText = `Enter a definition or apply a function to a constant:

  double = compose{*, construct{id, const(2)}}
  map{double} : <1, 2, 3>

Commands:
  :defs          list the session's definitions
  :doc NAME      describe a primitive, form or definition
  :load FILE     add the definitions in FILE to the session
  :run [CONST]   run main on CONST, or on <> when omitted
  :help          show this message
  :quit          end the session`

type session struct {
	rt       *lang.Runtime
	out      io.Writer
	logger   logrus.FieldLogger
	renderer *diagnostic.Renderer
	input    string
}

func newSession(table *lang.SymbolTable, cfg *config) *session {
	logger := cfg.logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(cfg.stderr)
		l.SetLevel(logrus.WarnLevel)
		logger = l
	}
	configs := []lang.Config{lang.WithStdout(cfg.stdout), lang.WithLogger(logger)}
	if cfg.stdin != nil {
		// readline owns the real input
		configs = append(configs, lang.WithStdin(strings.NewReader("")))
	}
	s := &session{
		rt:     lang.NewRuntime(table, append(configs, cfg.runtime...)...),
		out:    cfg.stderr,
		logger: logger,
	}
	s.renderer = &diagnostic.Renderer{Color: cfg.color, SourceReader: s.readSource}
	return s
}

// readSource returns the current input for interactive locations and the
// file contents otherwise.
func (s *session) readSource(name string) ([]byte, error) {
	if name == inputName {
		return []byte(s.input), nil
	}
	return os.ReadFile(name) //#nosec G304
}

// incomplete returns true if input ends inside brackets or right after a
// token that must be followed by more input.
func incomplete(input string) bool {
	lex := lexer.New(inputName, []byte(input))
	last := token.NONE
	for lex.Next() {
		last = lex.Token().Type
	}
	if lex.State() != lexer.END_OF_INPUT {
		return false
	}
	if lex.OpenSeq > 0 || lex.OpenSpec > 0 || lex.OpenForm > 0 {
		return true
	}
	switch last {
	case token.ASSIGN, token.APPLY, token.SEPARATOR:
		return true
	}
	return false
}

// eval handles one complete input and returns true when the session should
// end.
func (s *session) eval(input string) bool {
	s.input = input
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}
	p := rdparser.New(lexer.New(inputName, []byte(input)))
	for p.PeekType() != token.EOF {
		stmt, err := p.ParseStatement()
		if err != nil {
			s.renderError(err)
			return false
		}
		if stmt.Name != "" {
			if _, ok := s.rt.Table.Find(stmt.Name); ok {
				s.logger.WithField("source", stmt.Source.String()).Warnf("redefinition of %s", stmt.Name)
			}
			s.rt.Table.Add(stmt.Name, stmt.Fun)
			errlnf(s.out, "%s = %v", stmt.Name, stmt.Fun)
			continue
		}
		v, err := s.rt.Run(stmt.Fun, stmt.Input)
		if err != nil {
			s.renderError(err)
			return false
		}
		errlnf(s.out, "%v", v)
	}
	return false
}

func (s *session) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		errlnf(s.out, "%s", helpText)
	case ":defs":
		fmt.Fprint(s.out, s) //nolint:errcheck // best-effort REPL output
	case ":doc":
		s.doc(arg)
	case ":load":
		s.load(arg)
	case ":run":
		s.run(arg)
	default:
		errlnf(s.out, "unknown command %s (try :help)", name)
	}
	return false
}

func (s *session) doc(name string) {
	if name == "" {
		errlnf(s.out, "usage: :doc NAME")
		return
	}
	if usage, doc, ok := lang.BuiltinDoc(name); ok {
		errlnf(s.out, "%s %s\n\n%s", name, usage, doc)
		return
	}
	fn, ok := s.rt.Table.Find(name)
	if !ok {
		errlnf(s.out, "%s is not defined", name)
		return
	}
	if fn.Doc != "" {
		errlnf(s.out, "%s\n", fn.Doc)
	}
	errlnf(s.out, "%s = %v", name, fn)
}

func (s *session) load(path string) {
	if path == "" {
		errlnf(s.out, "usage: :load FILE")
		return
	}
	prog, err := parser.LoadFile(path, parser.WithLogger(s.logger))
	if err != nil {
		s.renderError(err)
		return
	}
	for _, def := range prog.Definitions {
		s.rt.Table.Add(def.Name, def.Fun)
	}
	errlnf(s.out, "loaded %d definitions from %s", len(prog.Definitions), path)
}

func (s *session) run(arg string) {
	in := lang.SeqValue()
	if arg != "" {
		var err error
		in, err = literal.Parse(arg)
		if err != nil {
			s.renderError(err)
			return
		}
	}
	v, err := s.rt.RunMainValue(in)
	if err != nil {
		s.renderError(err)
		return
	}
	errlnf(s.out, "%v", v)
}

// renderError renders err against the current input.
func (s *session) renderError(err error) {
	d := diagnostic.FromError(err)
	if errors.Is(err, lang.ErrNoMain) {
		d.Notes = append(d.Notes, "define main or use :load FILE")
	}
	_ = s.renderer.Render(s.out, d)
}

// String renders the session's definitions in source syntax.
func (s *session) String() string {
	var b strings.Builder
	for _, name := range s.rt.Table.Names() {
		fn, _ := s.rt.Table.Find(name)
		fmt.Fprintf(&b, "%s = %v\n", name, fn)
	}
	return b.String()
}
