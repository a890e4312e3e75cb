package mux

import (
	"context"
	"os/exec"
)

// Execer abstracts external command execution so tests can script tmux
// without spawning processes. The production implementation is execRunner.
type Execer interface {
	// Run executes name with args and returns its stdout. A non-zero
	// exit returns an error; stderr is attached via *exec.ExitError.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}
