// Package runner starts a config executable and exposes its stdout as a
// stream of lines. The reload orchestrator consumes it through the Runner
// interface; tests substitute a double.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Runner yields stdout lines from a running config process.
type Runner interface {
	// ReadLine blocks until the next line is available. It returns io.EOF
	// when the process exits or closes its stdout, or another error if the
	// stream breaks.
	ReadLine() (string, error)

	// Stop terminates the process and releases its resources. Safe to call
	// more than once and concurrently with ReadLine.
	Stop() error
}

// Factory starts a Runner for the executable at path.
type Factory func(path string) (Runner, error)

// processRunner runs a local executable via os/exec.
type processRunner struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader

	stopOnce sync.Once
	stopErr  error
}

// Start launches the executable at path and begins reading its stdout.
// Stderr is passed through to the parent's stderr so the process can log
// its own diagnostics.
func Start(path string) (Runner, error) {
	cmd := exec.Command(path)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}

	return &processRunner{
		cmd:    cmd,
		stdout: stdout,
		reader: bufio.NewReader(stdout),
	}, nil
}

func (r *processRunner) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		// A final unterminated line is still a line.
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *processRunner) Stop() error {
	r.stopOnce.Do(func() {
		// Closing stdout unblocks a pending ReadLine before the kill lands.
		_ = r.stdout.Close()

		if r.cmd.Process != nil {
			if err := r.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				r.stopErr = err
			}
		}

		// Reap the process so it does not linger as a zombie.
		_ = r.cmd.Wait()
	})
	return r.stopErr
}
