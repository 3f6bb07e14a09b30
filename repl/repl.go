// Copyright © 2024 The col authors

// Package repl implements an interactive read-eval-print loop for col.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bieber/col/diagnostic"
	"github.com/bieber/col/lang"
	"github.com/ergochat/readline"
	"github.com/sirupsen/logrus"
)

type config struct {
	stdin   io.ReadCloser
	stderr  io.Writer
	stdout  io.Writer
	logger  logrus.FieldLogger
	history string
	color   diagnostic.ColorMode
	runtime []lang.Config
}

func newConfig(opts ...Option) *config {
	config := &config{
		stderr:  os.Stderr,
		stdout:  os.Stdout,
		history: historyPath(),
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL: prompts, results and
// errors.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithStdout sets the writer used by the print primitives.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithLogger sets the logger given to the session runtime.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHistoryFile sets the file that keeps input history between sessions.
// An empty path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.history = path
	}
}

// WithColor sets the color mode of error diagnostics.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithRuntimeConfig applies configs to the session runtime.
func WithRuntimeConfig(configs ...lang.Config) Option {
	return func(c *config) {
		c.runtime = append(c.runtime, configs...)
	}
}

// Run runs a repl whose session starts with the definitions in table, which
// may be nil.  Input continues on following lines while brackets are open.
func Run(table *lang.SymbolTable, prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	sess := newSession(table, cfg)

	ensureHistoryFilePermissions(cfg.history)
	rlCfg := &readline.Config{
		Stdout:            cfg.stderr,
		Stderr:            cfg.stderr,
		Prompt:            prompt,
		HistoryFile:       cfg.history,
		HistorySearchFold: true,
		AutoComplete:      &nameCompleter{table: sess.rt.Table},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	cont := strings.Repeat(" ", max(len(prompt)-2, 0)) + ". "
	var input strings.Builder
	for {
		if input.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			input.Reset()
			continue
		}
		if err != nil {
			return nil
		}
		input.Write(line)
		input.WriteByte('\n')
		if strings.TrimSpace(input.String()) == "" {
			input.Reset()
			continue
		}
		if incomplete(input.String()) {
			continue
		}
		quit := sess.eval(input.String())
		input.Reset()
		if quit {
			return nil
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".col_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //#nosec G304
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}

func errlnf(w io.Writer, format string, v ...interface{}) {
	fmt.Fprintf(w, format+"\n", v...) //nolint:errcheck // best-effort REPL output
}
