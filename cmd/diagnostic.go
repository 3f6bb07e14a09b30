// Copyright © 2024 The col authors

package cmd

import (
	"io"

	"github.com/bieber/col/diagnostic"
	"github.com/bieber/col/parser"
	"github.com/bieber/col/parser/rdparser"
)

func newRenderer(color string) (*diagnostic.Renderer, error) {
	mode, err := diagnostic.ParseColorMode(color)
	if err != nil {
		return nil, err
	}
	return &diagnostic.Renderer{Color: mode}, nil
}

// renderRedefinitions warns about each definition in prog that shadows an
// earlier one.
func renderRedefinitions(r *diagnostic.Renderer, w io.Writer, prog *parser.Program) {
	var ds []diagnostic.Diagnostic
	for _, def := range prog.Redefined {
		ds = append(ds, diagnostic.Redefinition(def, previousDefinition(prog.Definitions, def)))
	}
	if len(ds) > 0 {
		_ = r.RenderAll(w, ds)
	}
}

// previousDefinition returns the last definition of def's name before def.
func previousDefinition(defs []*rdparser.Definition, def *rdparser.Definition) *rdparser.Definition {
	var prev *rdparser.Definition
	for _, d := range defs {
		if d == def {
			break
		}
		if d.Name == def.Name {
			prev = d
		}
	}
	return prev
}
