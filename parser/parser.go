// Copyright © 2024 The col authors

// Package parser loads col programs from source text.
package parser

import (
	"io"
	"os"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/lexer"
	"github.com/bieber/col/parser/rdparser"
	"github.com/sirupsen/logrus"
)

// Program is a loaded col source file.
type Program struct {
	Table *lang.SymbolTable
	// Definitions lists every definition in source order.
	Definitions []*rdparser.Definition
	// Redefined lists the definitions shadowing an earlier one.
	Redefined []*rdparser.Definition
}

// Main returns the program's main definition.
func (p *Program) Main() (*lang.Function, error) {
	fn, ok := p.Table.Find("main")
	if !ok {
		return nil, lang.ErrNoMain
	}
	return fn, nil
}

// Reader reads col programs.
type Reader interface {
	Read(name string, r io.Reader) (*Program, error)
	// ReadLocation is like Read but records path as the physical location
	// of the source in descriptor locations.
	ReadLocation(name string, path string, r io.Reader) (*Program, error)
}

// Option configures a Reader.
type Option func(*reader)

// WithLogger returns an Option that logs shadowed definitions as warnings.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *reader) {
		r.logger = logger
	}
}

type reader struct {
	logger logrus.FieldLogger
}

// NewReader returns a new Reader
func NewReader(opts ...Option) Reader {
	r := &reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *reader) Read(name string, src io.Reader) (*Program, error) {
	return r.ReadLocation(name, "", src)
}

func (r *reader) ReadLocation(name string, path string, src io.Reader) (*Program, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return r.load(name, path, buf)
}

func (r *reader) load(name string, path string, src []byte) (*Program, error) {
	lex := lexer.New(name, src)
	if path != "" {
		lex.SetPath(path)
	}
	p := rdparser.New(lex)
	table, err := p.Parse()
	if err != nil {
		return nil, err
	}
	prog := &Program{
		Table:       table,
		Definitions: p.Definitions(),
		Redefined:   p.Redefined(),
	}
	if r.logger != nil {
		for _, def := range prog.Redefined {
			r.logger.WithField("source", def.Source.String()).Warnf("definition of %s shadows an earlier definition", def.Name)
		}
	}
	return prog, nil
}

// Load parses src and returns its definitions.
func Load(name string, src []byte) (*lang.SymbolTable, error) {
	prog, err := LoadProgram(name, src)
	if err != nil {
		return nil, err
	}
	return prog.Table, nil
}

// LoadProgram parses src into a Program.
func LoadProgram(name string, src []byte, opts ...Option) (*Program, error) {
	return NewReader(opts...).(*reader).load(name, "", src)
}

// LoadFile reads and parses the file at path.
func LoadFile(path string, opts ...Option) (*Program, error) {
	f, err := os.Open(path) //#nosec G304
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReader(opts...).ReadLocation(path, path, f)
}
