package source

import (
	"fmt"

	"github.com/kart-io/confsource/pkg/utils/json"
)

// Message is one opaque config update payload. Its schema belongs to the
// downstream consumer; the source only guarantees the payload is one
// well-formed JSON document.
type Message struct {
	raw []byte
}

// ParseMessage validates data as a single JSON document and wraps it.
// The payload is compacted so process-mode and static-mode updates with the
// same content compare equal.
func ParseMessage(data []byte) (*Message, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("not a valid JSON document")
	}
	raw, err := json.Compact(data)
	if err != nil {
		return nil, err
	}
	return &Message{raw: raw}, nil
}

// Raw returns the compacted JSON payload. Callers must not modify it.
func (m *Message) Raw() []byte {
	return m.raw
}

// Decode unmarshals the payload into v.
func (m *Message) Decode(v interface{}) error {
	return json.Unmarshal(m.raw, v)
}

// String returns the payload as a string, for logs and tests.
func (m *Message) String() string {
	return string(m.raw)
}
