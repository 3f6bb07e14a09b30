// Copyright © 2024 The col authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bieber/col/diagnostic"
	"github.com/bieber/col/docs"
	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/bieber/col/parser/rdparser"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

const docWidth = 72

// DocCommand creates the "doc" cobra command.
func DocCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)
	var (
		sourceFile string
		guide      bool
	)

	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for primitives, forms and definitions",
		Long: `Show built-in documentation for col primitives and functional forms.

Without NAME, lists every primitive and form with its usage.  Use -f to load
a source file first; its definitions are then documented by their comment
blocks.  Use --guide to print the language guide.

Examples:
  col doc                      List all primitives and forms
  col doc reduce               Show docs for the reduce form
  col doc -f fib.col fib       Show the definition of fib and its comment
  col doc --guide              Print the language guide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			if guide {
				_, err := io.WriteString(out, docs.LangGuide)
				return err
			}
			var prog *parser.Program
			if sourceFile != "" {
				var err error
				prog, err = parser.LoadFile(sourceFile)
				if err != nil {
					renderer, rerr := newRenderer(cfg.viper.GetString("color"))
					if rerr != nil {
						return rerr
					}
					_ = renderer.Render(cmd.ErrOrStderr(), diagnostic.FromError(err))
					return errFailed
				}
			}
			if len(args) == 0 {
				return renderIndex(out, prog)
			}
			return renderDoc(out, prog, args[0])
		},
	}

	cmd.Flags().StringVarP(&sourceFile, "source-file", "f", "",
		"Load a col source file before querying documentation.")
	cmd.Flags().BoolVar(&guide, "guide", false,
		"Print the col language guide.")
	return cmd
}

// renderIndex lists the primitives, forms and the definitions of prog.
func renderIndex(w io.Writer, prog *parser.Program) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Primitives:")
	for _, p := range lang.Primitives() {
		fmt.Fprintf(tw, "  %s\t%s\n", p.Name, p.Usage)
	}
	fmt.Fprintln(tw, "\nForms:")
	for _, f := range lang.Forms() {
		fmt.Fprintf(tw, "  %s\t%s\n", f.Name, f.Usage)
	}
	if prog != nil && prog.Table.Len() > 0 {
		fmt.Fprintln(tw, "\nDefinitions:")
		for _, name := range prog.Table.Names() {
			fn, _ := prog.Table.Find(name)
			fmt.Fprintf(tw, "  %s\t%s\n", name, firstLine(fn.Doc))
		}
	}
	return tw.Flush()
}

// renderDoc writes the documentation of name.  Definitions in prog shadow
// builtins of the same name, as they do when the program runs.
func renderDoc(w io.Writer, prog *parser.Program, name string) error {
	if def := lastDefinition(prog, name); def != nil {
		_, err := fmt.Fprintf(w, "function %s = %v\n", name, def.Fun)
		if err != nil {
			return err
		}
		if def.Source != nil {
			fmt.Fprintf(w, "  defined at %s\n", def.Source)
		}
		return writeDoc(w, def.Doc)
	}
	if i, ok := lang.LookupPrimitive(name); ok {
		p := lang.Primitives()[i]
		fmt.Fprintf(w, "primitive %s %s\n", p.Name, p.Usage)
		return writeDoc(w, p.Doc)
	}
	if i, ok := lang.LookupForm(name); ok {
		f := lang.Forms()[i]
		fmt.Fprintf(w, "form %s\n", f.Usage)
		return writeDoc(w, f.Doc)
	}
	return fmt.Errorf("no documentation for %s", name)
}

func lastDefinition(prog *parser.Program, name string) *rdparser.Definition {
	if prog == nil {
		return nil
	}
	var def *rdparser.Definition
	for _, d := range prog.Definitions {
		if d.Name == name {
			def = d
		}
	}
	return def
}

func writeDoc(w io.Writer, doc string) error {
	doc = cleanDoc(doc)
	if doc == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, doc)
	return err
}

// cleanDoc rewraps each paragraph of doc and indents the result.
func cleanDoc(doc string) string {
	var paras []string
	for _, para := range strings.Split(strings.TrimSpace(doc), "\n\n") {
		if para = strings.Join(strings.Fields(para), " "); para != "" {
			paras = append(paras, para)
		}
	}
	if len(paras) == 0 {
		return ""
	}
	wrapped := wordwrap.String(strings.Join(paras, "\n\n"), docWidth)
	return strings.TrimSuffix(indent.String(wrapped, 2), "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
