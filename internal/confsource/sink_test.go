package confsource

import (
	"bytes"
	"testing"

	"github.com/kart-io/confsource/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMessage(t *testing.T, data string) *source.Message {
	t.Helper()
	msg, err := source.ParseMessage([]byte(data))
	require.NoError(t, err)
	return msg
}

func TestStreamSinkWritesNDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf)

	require.NoError(t, sink.Apply(mustMessage(t, `{"n":1}`)))
	require.NoError(t, sink.Apply(mustMessage(t, `{"n":2}`)))

	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n", buf.String())
}

func TestStreamSinkTracksCurrent(t *testing.T) {
	sink := NewStreamSink(&bytes.Buffer{})

	assert.Nil(t, sink.Current())

	require.NoError(t, sink.Apply(mustMessage(t, `{"n":1}`)))
	require.NoError(t, sink.Apply(mustMessage(t, `{"n":2}`)))

	// The last delivered message stays current until a new one arrives.
	assert.Equal(t, `{"n":2}`, sink.Current().String())
}
