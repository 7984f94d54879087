// Package process runs external tools (TeX engines) with a deadline and
// makes sure nothing they spawn outlives it.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout is returned when a command does not finish before its deadline.
var ErrTimeout = errors.New("command timed out")

// DefaultTimeout bounds a version probe. TeX engines answer --version
// quickly, but a first run of MiKTeX may try to install packages.
const DefaultTimeout = 10 * time.Second

// Output runs name with args and returns its trimmed standard output. The
// command runs in its own process group, which is killed when ctx ends or
// timeout elapses. A zero timeout means DefaultTimeout.
func Output(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- callers pass fixed tool names
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s after %v", ErrTimeout, name, timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// FirstLine returns the first line of s.
func FirstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
