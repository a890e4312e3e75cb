package mux

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRunning means the tmux server is not reachable. Entry points
// probe for it first and fail fast; no command is retried against a
// dead server.
var ErrNotRunning = errors.New("no tmux server running")

// ExecError is a tmux invocation that exited non-zero (or died on a
// signal). It carries the failing argument list and the process output
// so the user can diagnose the exact command.
type ExecError struct {
	Args     []string
	ExitCode int
	Output   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("tmux %s: exit %d", strings.Join(e.Args, " "), e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// noServerMarkers are the stderr fragments tmux emits when the server
// is not reachable. Matching any of them maps the failure to
// ErrNotRunning instead of a generic ExecError.
var noServerMarkers = []string{
	"no server running",
	"error connecting to",
	"server exited unexpectedly",
}

func isNoServer(output string) bool {
	for _, marker := range noServerMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}
