package source

import (
	"context"
)

// streamProcess is the executable-mode delivery task: it starts the config
// process and forwards one message per well-formed stdout line until the
// stream ends or the generation is cancelled.
//
// A dead process is not restarted here. The generation goes silent and the
// downstream keeps its last delivered message; only a new change to the
// watched path starts a fresh generation.
func (s *Source) streamProcess(ctx context.Context, gen string) {
	r, err := s.newRunner(s.path)
	if err != nil {
		s.log.Errorw("Failed to start config process",
			"path", s.path,
			"generation", gen,
			"error", err,
		)
		return
	}

	// Stop the process as soon as the generation is superseded, which also
	// unblocks a pending ReadLine.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = r.Stop()
		case <-watchDone:
		}
	}()
	defer close(watchDone)
	defer func() { _ = r.Stop() }()

	for {
		line, err := r.ReadLine()
		if err != nil {
			if ctx.Err() == nil {
				s.log.Errorw("Config process stdout closed (process died?), keeping last update",
					"path", s.path,
					"generation", gen,
					"error", err,
				)
			}
			return
		}
		if line == "" {
			continue
		}

		msg, perr := ParseMessage([]byte(line))
		if perr != nil {
			// One bad line does not restart the process.
			s.log.Errorw("Failed to parse config process line",
				"generation", gen,
				"error", perr,
				"line", line,
			)
			continue
		}

		if !s.send(ctx, msg) {
			return
		}
	}
}
