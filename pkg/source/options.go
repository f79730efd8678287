package source

import (
	"time"

	"github.com/kart-io/confsource/pkg/infra/pool"
	"github.com/kart-io/confsource/pkg/runner"
	"github.com/kart-io/logger/core"
)

const (
	// DefaultCoalesceWindow merges change-event bursts into one reload.
	DefaultCoalesceWindow = time.Second

	// DefaultBuffer is the default update channel capacity.
	DefaultBuffer = 16
)

type options struct {
	log            core.Logger
	coalesceWindow time.Duration
	buffer         int
	newRunner      runner.Factory
	pool           *pool.Pool
}

// Option configures a Source.
type Option func(*options)

// WithLogger sets the logger used for diagnostics. Defaults to the global
// logger.
func WithLogger(log core.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCoalesceWindow sets how long a burst of filesystem events is merged
// into a single reload.
func WithCoalesceWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.coalesceWindow = d
		}
	}
}

// WithBuffer sets the update channel capacity.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.buffer = n
		}
	}
}

// WithRunnerFactory sets how executable-mode subprocesses are started.
// Defaults to runner.Start; tests inject a double here.
func WithRunnerFactory(f runner.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.newRunner = f
		}
	}
}

// WithPool sets the worker pool that runs delivery tasks. The caller keeps
// ownership; without this option the source creates and releases its own.
func WithPool(p *pool.Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}
