// Copyright © 2024 The col authors

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/bieber/col/diagnostic"
	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/bieber/col/parser/literal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runConfigKeys are the run settings that may also come from the config
// file or environment.
var runConfigKeys = []string{"verbose", "color", "max-depth", "trace"}

// RunCommand creates the "run" cobra command, an explicit form of running
// a program with the root command.
func RunCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)
	cmd := &cobra.Command{
		Use:   "run [flags] FILE [ARG...]",
		Short: "Run a col program",
		Long: `Run the program in FILE.  The main definition is applied to a Sequence
holding one String for each ARG, or to the constant given with --input.

The result of main is discarded unless --verbose is given.  Program output
comes from the print and println primitives.

Examples:
  col run examples/fib.col 10
  col run --input '<1, 2, 3>' sum.col
  col run --callgrind fib.callgrind examples/fib.col 20
  col run --trace otel examples/factorial.col 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, cfg, args[0], args[1:])
		},
	}
	cmd.Flags().SetInterspersed(false)
	addRunFlags(cmd.Flags())
	return cmd
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", "",
		"Apply main to this constant instead of the program arguments.")
	flags.Int("max-depth", lang.DefaultMaxDepth,
		"Maximum call stack height; 0 removes the limit.")
	flags.String("callgrind", "",
		"Write a callgrind profile of user function calls to this file.")
	flags.String("trace", "",
		`Log a trace span for each user function call: "otel" or "opencensus".`)
	flags.String("cpuprofile", "",
		"Write a pprof CPU profile, labeled by function, to this file.")
}

// runProgram loads and runs the program at path.  Failures are rendered to
// the command's standard error and reported as an *exitError.
func runProgram(cmd *cobra.Command, cfg *cmdConfig, path string, args []string) error {
	v := cfg.viper
	if err := bindFlags(v, cmd.Flags(), runConfigKeys...); err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	renderer, err := newRenderer(v.GetString("color"))
	if err != nil {
		return err
	}
	logger := newLogger(cfg, stderr)

	prog, err := parser.LoadFile(path)
	if err != nil {
		_ = renderer.Render(stderr, diagnostic.FromError(err))
		return errFailed
	}
	renderRedefinitions(renderer, stderr, prog)

	in := lang.Args(args)
	if text, _ := cmd.Flags().GetString("input"); text != "" {
		in, err = literal.Parse(text)
		if err != nil {
			d := diagnostic.FromError(err)
			d.Message = "invalid --input: " + d.Message
			_ = renderer.Render(stderr, d)
			return errFailed
		}
	}

	verbose := v.GetBool("verbose")
	if verbose {
		printDefinitions(stdout, prog.Table)
	}

	config := []lang.Config{
		lang.WithStdout(stdout),
		lang.WithStdin(cmd.InOrStdin()),
		lang.WithLogger(logger),
		lang.WithMaxDepth(v.GetInt("max-depth")),
	}
	rt := lang.NewRuntime(prog.Table, append(config, cfg.runtime...)...)

	prof, err := startProfiling(rt, cmd.Flags(), v.GetString("trace"), logger)
	if err != nil {
		_ = renderer.Render(stderr, diagnostic.FromError(err))
		return errFailed
	}
	result, err := rt.RunMainValue(in)
	if perr := prof.stop(); perr != nil {
		logger.WithError(perr).Warn("profiling failed")
	}
	if err != nil {
		d := diagnostic.FromError(err)
		if errors.Is(err, lang.ErrNoMain) {
			d.Notes = append(d.Notes, "the program runs the definition named main")
		}
		_ = renderer.Render(stderr, d)
		return errFailed
	}
	if verbose {
		fmt.Fprintln(stdout, result)
	}
	return nil
}

func printDefinitions(w io.Writer, table *lang.SymbolTable) {
	for _, name := range table.Names() {
		fn, _ := table.Find(name)
		fmt.Fprintf(w, "%s = %v\n", name, fn)
	}
}
