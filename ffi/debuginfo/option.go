package debuginfo

import "github.com/ardnew/ffins/log"

// Option applies a configuration option to config.
type Option func(config) config

type config struct {
	logger       log.Logger
	allLanguages bool
}

func makeConfig(opts ...Option) config {
	var cfg config

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithLogger sets the logger for skipped and unsupported entries.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithAllLanguages walks compile units of every source language instead of
// only Rust.
func WithAllLanguages(enable bool) Option {
	return func(c config) config {
		c.allLanguages = enable

		return c
	}
}
