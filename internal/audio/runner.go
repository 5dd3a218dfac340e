package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single backend command.
const DefaultTimeout = 2 * time.Second

// Runner executes a backend command and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands as child processes with a per-call timeout.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner. Non-positive timeouts use DefaultTimeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{timeout: timeout}
}

// Run executes name with args, capturing stdout and stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = r.timeout

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%s timed out after %s", name, r.timeout)
	}

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w, stderr: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
