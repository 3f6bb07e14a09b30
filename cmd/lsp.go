// Copyright © 2024 The col authors

package cmd

import (
	"fmt"

	"github.com/bieber/col/lsp"
	"github.com/spf13/cobra"
)

// LSPCommand creates the "lsp" cobra command.
func LSPCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)

	var (
		stdio bool
		port  int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the col Language Server Protocol server",
		Long: `Start an LSP server for col source files.

The language server provides diagnostics for syntax errors, redefinitions
and undefined functions, hover documentation, go-to-definition, find
references, completion, document symbols and semantic highlighting.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  col lsp                           Start with stdio transport
  col lsp --port 7998               Start with TCP on port 7998

Editor configuration:
  Configure a generic LSP client to run "col lsp" for .col files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout belongs to the protocol
			logger := newLogger(cfg, cmd.ErrOrStderr())
			srv := lsp.New(lsp.WithLogger(logger))

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				logger.WithField("addr", addr).Info("col LSP server listening")
				if err := srv.RunTCP(addr); err != nil {
					return fmt.Errorf("lsp server error: %w", err)
				}
				return nil
			}
			if err := srv.RunStdio(); err != nil {
				return fmt.Errorf("lsp server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")

	return cmd
}
