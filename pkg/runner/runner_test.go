package runner

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "config.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestStartReadsLinesUntilEOF(t *testing.T) {
	path := writeScript(t, `
printf '%s\n' '{"n":1}'
printf '%s\n' '{"n":2}'
`)

	r, err := Start(path)
	require.NoError(t, err)
	defer r.Stop()

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, `{"n":2}`, line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStartFailsForMissingExecutable(t *testing.T) {
	_, err := Start(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestStopUnblocksReadLine(t *testing.T) {
	path := writeScript(t, `
printf '%s\n' '{"n":1}'
sleep 60
`)

	r, err := Start(path)
	require.NoError(t, err)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, line)

	read := make(chan error, 1)
	go func() {
		_, err := r.ReadLine()
		read <- err
	}()

	require.NoError(t, r.Stop())

	select {
	case err := <-read:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ReadLine still blocked after Stop")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	path := writeScript(t, "sleep 60\n")

	r, err := Start(path)
	require.NoError(t, err)

	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())
}
