package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectModePlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	assert.Equal(t, ModePlainFile, SelectMode(path))
}

func TestSelectModeExecutable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	assert.Equal(t, ModeExecutable, SelectMode(path))
}

func TestSelectModeStatFailureFallsBackToPlainFile(t *testing.T) {
	// Permission-check failures select static-load semantics so the
	// generation surfaces the real error through the loader.
	assert.Equal(t, ModePlainFile, SelectMode(filepath.Join(t.TempDir(), "missing")))
}

func TestSelectModeReevaluated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	assert.Equal(t, ModePlainFile, SelectMode(path))

	require.NoError(t, os.Chmod(path, 0o755))
	assert.Equal(t, ModeExecutable, SelectMode(path))

	require.NoError(t, os.Chmod(path, 0o644))
	assert.Equal(t, ModePlainFile, SelectMode(path))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "plain-file", ModePlainFile.String())
	assert.Equal(t, "executable", ModeExecutable.String())
}
