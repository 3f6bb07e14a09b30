// Copyright © 2024 The col authors

package cmd

import (
	"github.com/bieber/col/lang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Option configures an exported command factory (NewRootCommand,
// RunCommand, DocCommand, REPLCommand, LSPCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	logger  *logrus.Logger
	runtime []lang.Config
	viper   *viper.Viper
}

func newCmdConfig(opts []Option) *cmdConfig {
	cfg := &cmdConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.viper == nil {
		cfg.viper = viper.New()
	}
	return cfg
}

// WithLogger sends log output to logger instead of a new logger writing to
// the command's standard error.  The --verbose flag still controls its
// level.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *cmdConfig) { c.logger = logger }
}

// WithRuntimeConfig appends configuration applied to every runtime the
// commands create, after the configuration derived from flags.
func WithRuntimeConfig(config ...lang.Config) Option {
	return func(c *cmdConfig) { c.runtime = append(c.runtime, config...) }
}

// WithViper reads configuration from v instead of a private instance.
func WithViper(v *viper.Viper) Option {
	return func(c *cmdConfig) { c.viper = v }
}
