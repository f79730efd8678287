// Package pool provides an ants-backed worker pool for background tasks.
//
// The reload orchestrator runs each executable-mode delivery task on a pool
// rather than a raw goroutine, so worker reuse, panic recovery and a hard
// concurrency cap come for free.
package pool

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"
)

var (
	// ErrPoolClosed is returned when submitting to a released pool.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrPoolOverload is returned when the pool cannot accept more tasks.
	ErrPoolOverload = errors.New("worker pool is overloaded")
)

// Config defines the configuration for a worker pool.
type Config struct {
	// Capacity is the maximum number of concurrently running workers.
	Capacity int
	// ExpiryDuration is how long an idle worker is kept alive.
	ExpiryDuration time.Duration
	// Nonblocking makes Submit return ErrPoolOverload instead of waiting
	// when the pool is full.
	Nonblocking bool
	// PanicHandler handles panics escaping a task. A default logging
	// handler is installed when nil.
	PanicHandler func(interface{})
}

// DefaultConfig returns the pool configuration used for delivery tasks.
// One generation runs at most one delivery task, so the capacity stays small.
func DefaultConfig() *Config {
	return &Config{
		Capacity:       4,
		ExpiryDuration: 30 * time.Second,
		Nonblocking:    false,
	}
}

// Pool wraps an ants.Pool with submission accounting.
type Pool struct {
	name      string
	pool      *ants.Pool
	submitted atomic.Int64
	completed atomic.Int64
	closed    atomic.Bool
}

// Stats contains pool submission counters.
type Stats struct {
	Submitted int64
	Completed int64
	Running   int
}

// New creates a worker pool with the given configuration.
func New(name string, config *Config) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}

	p := &Pool{name: name}

	opts := []ants.Option{
		ants.WithExpiryDuration(config.ExpiryDuration),
		ants.WithNonblocking(config.Nonblocking),
	}
	if config.PanicHandler != nil {
		opts = append(opts, ants.WithPanicHandler(config.PanicHandler))
	} else {
		opts = append(opts, ants.WithPanicHandler(func(r interface{}) {
			logger.Errorw("Worker panic recovered", "pool", name, "panic", r)
		}))
	}

	pool, err := ants.NewPool(config.Capacity, opts...)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// Name returns the pool name.
func (p *Pool) Name() string {
	return p.name
}

// Running returns the number of currently running workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Submit schedules task for execution on the pool.
func (p *Pool) Submit(task func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	err := p.pool.Submit(func() {
		defer p.completed.Add(1)
		task()
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			return ErrPoolOverload
		}
		return err
	}

	p.submitted.Add(1)
	return nil
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Running:   p.pool.Running(),
	}
}

// Release shuts the pool down. Queued tasks are dropped; running tasks
// finish on their own.
func (p *Pool) Release() {
	if p.closed.CompareAndSwap(false, true) {
		p.pool.Release()
	}
}
