// Copyright © 2024 The col authors

package diagnostic

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode converts the flag values "auto", "always" and "never" to a
// ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return "auto"
}

// palette holds the ANSI escape sequences for each part of a diagnostic.
// The zero palette writes plain text.
type palette struct {
	bold     string
	severity [3]string // indexed by Severity
	gutter   string    // arrows, bars and line numbers
	note     string
	reset    string
}

var ansiPalette = palette{
	bold: "\033[1m",
	severity: [3]string{
		SeverityError:   "\033[1;31m",
		SeverityWarning: "\033[1;33m",
		SeverityNote:    "\033[1;36m",
	},
	gutter: "\033[1;34m",
	note:   "\033[1;36m",
	reset:  "\033[0m",
}

var noPalette = palette{}

// forSeverity returns the sequence that starts text colored for s.
func (p palette) forSeverity(s Severity) string {
	if s < 0 || int(s) >= len(p.severity) {
		return p.bold
	}
	return p.severity[s]
}

// choosePalette selects the appropriate color palette based on the mode
// and the output file descriptor.
func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return noPalette
	default: // ColorAuto
		if os.Getenv("NO_COLOR") != "" {
			return noPalette
		}
		if !isTerminal(w) {
			return noPalette
		}
		return ansiPalette
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
