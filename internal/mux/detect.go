package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// Detect auto-detects the terminal multiplexer to drive. The $TMUX
// environment variable wins; otherwise we require a tmux binary with a
// running server.
func Detect() (*Tmux, error) {
	if os.Getenv("TMUX") != "" {
		return NewTmux(), nil
	}
	if path, err := exec.LookPath("tmux"); err == nil && path != "" {
		if exec.Command("tmux", "has-session").Run() == nil {
			return NewTmux(), nil
		}
	}
	return nil, fmt.Errorf("no terminal multiplexer detected (set $TMUX or start a tmux server): %w", ErrNotRunning)
}

// FromName creates a multiplexer by name.
func FromName(name string) (*Tmux, error) {
	switch name {
	case "tmux":
		return NewTmux(), nil
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}
