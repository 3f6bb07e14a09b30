// Copyright © 2024 The col authors

// Package diagnostic renders col errors and warnings as annotated source
// snippets.  It does not depend on the language packages, which convert
// their own errors into a Diagnostic.
package diagnostic

import "fmt"

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityNote:    "note",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Span is a region of one source line.  Line and columns are 1-based and
// columns count runes.
type Span struct {
	// File is read to show the source line and is displayed as is when it
	// cannot be read.
	File string
	Line int
	Col  int
	// EndCol is the last underlined column.  Zero underlines the token
	// starting at Col.
	EndCol int
	Label  string
}

// location returns the span in file:line:col form, omitting unknown parts.
func (s Span) location() string {
	switch {
	case s.Line <= 0:
		return s.File
	case s.Col <= 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// Diagnostic is an error, warning or note with the source it concerns.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	// Notes follow the snippets, one "= note:" line each.
	Notes []string
}
