package subdivision

import "log/slog"

// Option configures a refinement call
type Option func(*config)

type config struct {
	workers int
	logger  *slog.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		workers: 1,
		logger:  Logger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWorkers evaluates the edge rules with n goroutines before the serial insertion pass.
// The result is identical to the serial path, n < 2 means serial.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n < 1 {
			n = 1
		}
		cfg.workers = n
	}
}

// WithLogger overrides the package logger for one call
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
