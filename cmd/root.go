// Copyright © 2024 The col authors

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// exitError reports a failure that has already been rendered to the user.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var errFailed = &exitError{code: 1}

// NewRootCommand returns the col command.  Given a source file it runs the
// program, otherwise it prints help.
func NewRootCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts)
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "col [flags] FILE [ARG...]",
		Short: "col: a point-free functional language",
		Long: `col runs programs written in a small point-free functional language.
A program is a list of definitions built from primitives and functional
forms.  Running a program applies its main definition to the Sequence of
program arguments, each one a String.

Getting started:
  col prog.col a b c              Run prog.col with input <"a", "b", "c">
  col --input '<1, 2>' prog.col   Run prog.col with input <1, 2>
  col repl                        Start an interactive session
  col doc compose                 Show documentation for a form
  col doc --guide                 Print the language guide

Example program:
  # Sums the program arguments.
  main = compose{println, str, reduce{+}, map{int}}

Configuration is read from $HOME/.col.yaml and from COL_* environment
variables (COL_VERBOSE, COL_MAX_DEPTH, COL_COLOR, COL_TRACE).`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cfg.viper, cfgFile, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runProgram(cmd, cfg, args[0], args[1:])
		},
	}
	// program arguments may look like flags
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.col.yaml)")
	rootCmd.PersistentFlags().String("color", "auto",
		`Control colored diagnostics: "auto", "always", or "never".`)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"Print definitions and results, and enable debug logging.")
	addRunFlags(rootCmd.Flags())

	// subcommands share the root's configuration
	subOpts := append(append([]Option{}, opts...), WithViper(cfg.viper))
	rootCmd.AddCommand(
		RunCommand(subOpts...),
		DocCommand(subOpts...),
		REPLCommand(subOpts...),
		LSPCommand(subOpts...),
	)
	for _, sub := range rootCmd.Commands() {
		sub.SilenceErrors = true
		sub.SilenceUsage = true
	}
	return rootCmd
}

// Execute runs the col command and exits the process on failure.  This is
// called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(ee.code)
	}
}

// initConfig reads in the config file and environment variables.  A
// missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	v.SetEnvPrefix("col")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".col")
		v.SetConfigType("yaml")
	}
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		if v.GetBool("verbose") {
			fmt.Fprintln(stderr, "Using config file:", v.ConfigFileUsed())
		}
	case cfgFile == "" && errors.As(err, &notFound):
	default:
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// bindFlags makes the named flags of the running command take precedence
// over the config file and environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(name, f); err != nil {
			return err
		}
	}
	return nil
}

// newLogger returns the logger commands report through.  Verbose output
// enables debug messages.
func newLogger(cfg *cmdConfig, stderr io.Writer) *logrus.Logger {
	logger := cfg.logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	logger.SetLevel(logrus.WarnLevel)
	if cfg.viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
