package ns

import "github.com/ardnew/ffins/log"

// DefaultName is the facade name used in diagnostics when none is given.
const DefaultName = "ffi"

// Option applies a configuration option to config.
type Option func(config) config

type config struct {
	logger log.Logger
	name   string
}

func makeConfig(opts ...Option) config {
	cfg := config{name: DefaultName}

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithName sets the facade name reported by [Root.Name] and by
// attribute-not-found errors. An empty name is ignored.
func WithName(name string) Option {
	return func(c config) config {
		if name != "" {
			c.name = name
		}

		return c
	}
}

// WithLogger sets the logger used while building. The zero [log.Logger]
// discards all messages.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
