package confsource

import (
	"fmt"
	"io"
	"sync"

	"github.com/kart-io/confsource/pkg/source"
)

// Sink consumes update messages from the config source.
type Sink interface {
	// Apply handles one update message.
	Apply(msg *source.Message) error
}

// StreamSink forwards each update as one NDJSON line and keeps the latest
// message as the current state. During a failure window upstream no updates
// arrive and Current keeps returning the last delivered message.
type StreamSink struct {
	mu      sync.Mutex
	w       io.Writer
	current *source.Message
}

// NewStreamSink creates a sink writing NDJSON lines to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Apply writes the message payload followed by a newline and records it as
// current.
func (s *StreamSink) Apply(msg *source.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s\n", msg.Raw()); err != nil {
		return err
	}
	s.current = msg
	return nil
}

// Current returns the last applied message, or nil before the first update.
func (s *StreamSink) Current() *source.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
