// Copyright © 2024 The col authors

package cmd

import (
	"io"
	"os"

	"github.com/bieber/col/diagnostic"
	"github.com/bieber/col/lang"
	"github.com/bieber/col/parser"
	"github.com/bieber/col/repl"
	"github.com/spf13/cobra"
)

// REPLCommand creates the "repl" cobra command.
func REPLCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "repl [flags] [FILE]",
		Short: "Start an interactive col session",
		Long: `Start an interactive read-eval-print loop.  Definitions in FILE, if
given, are loaded first.

Each line is either a definition, which is added to the session, or a
function applied to a constant with ':', which is evaluated and printed.
Input continues on the next line while brackets are open.  Use Ctrl-D or
:quit to exit and :help to list commands.

Example session:
  col> double = compose{*, construct{id, const(2)}}
  double = compose{*, construct{id, const(2)}}
  col> map{double} : <1, 2, 3>
  <2, 4, 6>
  col> main = compose{println, str, map{double}, map{int}}
  main = compose{println, str, map{double}, map{int}}
  col> :run <"4", "5">
  <8, 10>
  <8, 10>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := cfg.viper
			if err := bindFlags(v, cmd.Flags(), runConfigKeys...); err != nil {
				return err
			}
			renderer, err := newRenderer(v.GetString("color"))
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			logger := newLogger(cfg, stderr)

			table := lang.NewSymbolTable()
			if len(args) > 0 {
				prog, err := parser.LoadFile(args[0])
				if err != nil {
					_ = renderer.Render(stderr, diagnostic.FromError(err))
					return errFailed
				}
				renderRedefinitions(renderer, stderr, prog)
				table = prog.Table
			}

			replOpts := []repl.Option{
				repl.WithStderr(stderr),
				repl.WithStdout(cmd.OutOrStdout()),
				repl.WithLogger(logger),
				repl.WithColor(renderer.Color),
				repl.WithRuntimeConfig(append([]lang.Config{lang.WithMaxDepth(v.GetInt("max-depth"))}, cfg.runtime...)...),
			}
			if in := cmd.InOrStdin(); in != io.Reader(os.Stdin) {
				replOpts = append(replOpts, repl.WithStdin(io.NopCloser(in)))
			}
			if noHistory {
				replOpts = append(replOpts, repl.WithHistoryFile(""))
			}
			return repl.Run(table, "col> ", replOpts...)
		},
	}
	cmd.Flags().BoolVar(&noHistory, "no-history", false,
		"Do not read or write the history file ($HOME/.col_history).")
	cmd.Flags().Int("max-depth", lang.DefaultMaxDepth,
		"Maximum call stack height; 0 removes the limit.")
	return cmd
}
