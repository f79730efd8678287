// Package source turns one filesystem path into a hot-reloading stream of
// update messages.
//
// The path denotes either a plain JSON document, parsed once per reload, or
// an executable, run as a subprocess that emits one JSON document per stdout
// line. Which of the two applies is re-decided from the executable permission
// bits on every reload. Downstream consumers read the Updates channel and
// always see messages from exactly one active generation; when the path
// changes on disk the previous generation is cancelled and a new one starts.
package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/kart-io/confsource/pkg/infra/pool"
	"github.com/kart-io/confsource/pkg/runner"
	"github.com/kart-io/confsource/pkg/utils/id"
	"github.com/kart-io/logger"
	"github.com/kart-io/logger/core"
)

// Source owns the watched path and the update channel.
type Source struct {
	path      string
	log       core.Logger
	watcher   *changeWatcher
	pool      *pool.Pool
	ownPool   bool
	newRunner runner.Factory
	updates   chan *Message

	cancel    context.CancelFunc
	loopDone  chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New creates a Source for path and starts its reload loop.
//
// Installing the filesystem watch is the one construction-fatal step: a
// source that cannot observe changes is useless, so the error propagates
// instead of degrading into a no-reload mode. Every later failure (unreadable
// file, bad JSON, crashed subprocess) is recovered locally and only costs
// messages.
func New(path string, opts ...Option) (*Source, error) {
	o := &options{
		log:            logger.Global(),
		coalesceWindow: DefaultCoalesceWindow,
		buffer:         DefaultBuffer,
		newRunner:      runner.Start,
	}
	for _, opt := range opts {
		opt(o)
	}

	watcher, err := newChangeWatcher(path, o.coalesceWindow, o.log)
	if err != nil {
		return nil, fmt.Errorf("install change watcher: %w", err)
	}

	p := o.pool
	ownPool := false
	if p == nil {
		p, err = pool.New("confsource-delivery", pool.DefaultConfig())
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("create delivery pool: %w", err)
		}
		ownPool = true
	}

	s := &Source{
		path:      path,
		log:       o.log,
		watcher:   watcher,
		pool:      p,
		ownPool:   ownPool,
		newRunner: o.newRunner,
		updates:   make(chan *Message, o.buffer),
		loopDone:  make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)

	return s, nil
}

// Updates returns the channel of parsed update messages. It is closed when
// the source is closed.
func (s *Source) Updates() <-chan *Message {
	return s.updates
}

// Path returns the watched path.
func (s *Source) Path() string {
	return s.path
}

// run is the orchestrator loop: start a generation, park on the watcher,
// cancel and restart on every wakeup.
//
// The watcher is armed for the source's whole lifetime, and its wakeup
// channel buffers one pending change, so a change that lands while a
// generation is still starting is not lost.
func (s *Source) run(ctx context.Context) {
	defer close(s.loopDone)

	gen := s.startGeneration(ctx)

	for {
		if err := s.watcher.Wait(ctx); err != nil {
			gen.stop()
			close(s.updates)
			return
		}

		s.log.Infow("Config path changed, reloading", "path", s.path)
		gen.stop()
		gen = s.startGeneration(ctx)
	}
}

// generation is one reload cycle: a selected mode plus its delivery task.
type generation struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// stop cancels the generation and waits for its delivery task to return,
// so no two generations ever run concurrently.
func (g *generation) stop() {
	g.cancel()
	<-g.done
}

// startGeneration is the single arm-and-deliver step used at startup and
// after every reload. Mode selection happens here, on every call.
func (s *Source) startGeneration(parent context.Context) *generation {
	ctx, cancel := context.WithCancel(parent)
	g := &generation{
		id:     id.NewULID(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	mode := SelectMode(s.path)
	s.log.Infow("Starting config generation",
		"generation", g.id,
		"mode", mode.String(),
		"path", s.path,
	)

	switch mode {
	case ModeExecutable:
		// Long-lived: runs on the pool so the loop stays responsive to
		// the next change notification.
		err := s.pool.Submit(func() {
			defer close(g.done)
			s.streamProcess(ctx, g.id)
		})
		if err != nil {
			s.log.Errorw("Failed to schedule delivery task",
				"generation", g.id,
				"error", err,
			)
			close(g.done)
		}
	default:
		// One-shot and bounded: runs inline.
		if msg, ok := s.loadStatic(g.id); ok {
			s.send(ctx, msg)
		}
		close(g.done)
	}

	return g
}

// send delivers msg unless the generation has been superseded or the source
// closed. A cancelled send is silently dropped.
func (s *Source) send(ctx context.Context, msg *Message) bool {
	select {
	case s.updates <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close cancels the running generation and the watcher wait, stops the
// reload loop and closes the update channel. No subprocess or delivery task
// outlives it.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.watcher.Close()
		<-s.loopDone
		if s.ownPool {
			s.pool.Release()
		}
	})
	return s.closeErr
}
