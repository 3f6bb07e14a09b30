// Copyright © 2024 The col authors

package diagnostic

import (
	"errors"
	"fmt"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser/rdparser"
	"github.com/bieber/col/parser/token"
)

// FromError converts an error returned while loading or running a program
// into a Diagnostic.  Errors carrying a source location produce a span.
func FromError(err error) Diagnostic {
	d := Diagnostic{
		Severity: SeverityError,
		Message:  err.Error(),
	}
	var perr *rdparser.ParseError
	var lerr *token.LocationError
	var soe *lang.StackOverflowError
	switch {
	case errors.As(err, &perr):
		d.Message = perr.Kind.String()
		if perr.Err != nil {
			d.Message += ": " + perr.Err.Error()
		}
		d.Spans = LocationSpans(perr.Source)
	case errors.As(err, &lerr):
		d.Message = lerr.Err.Error()
		d.Spans = LocationSpans(lerr.Source)
	case errors.As(err, &soe):
		d.Message = fmt.Sprintf("stack overflow: call depth exceeded %d", soe.Height-1)
		d.Notes = append(d.Notes, "in "+soe.Frame.String())
		d.Notes = append(d.Notes, "recursion without a base case never returns; check the condition of if and while forms")
	}
	return d
}

// Redefinition returns a warning for def, which shadows prev.  A nil prev
// omits the note.
func Redefinition(def, prev *rdparser.Definition) Diagnostic {
	d := Diagnostic{
		Severity: SeverityWarning,
		Message:  "redefinition of " + def.Name,
		Spans:    LocationSpans(def.Source),
	}
	if prev != nil && prev.Source != nil {
		d.Notes = append(d.Notes, "previous definition at "+prev.Source.String())
	}
	return d
}

// LocationSpans returns a single span at loc, preferring its physical path.
// An unknown location has no span.
func LocationSpans(loc *token.Location) []Span {
	if loc == nil || loc.Pos < 0 {
		return nil
	}
	file := loc.File
	if loc.Path != "" {
		file = loc.Path
	}
	return []Span{{File: file, Line: loc.Line, Col: loc.Col}}
}
