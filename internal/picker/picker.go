// Package picker supplies the interactive chooser used to resolve
// sessions, windows, panes, and paste buffers. The core code depends
// only on the Chooser interface; the default implementation is a small
// bubbletea list with a filter input, with a plain numbered menu as
// the fallback for non-interactive terminals.
package picker

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrCancelled means the user aborted an interactive selection. The
// command surface treats it as a silent no-op: selection state is
// cleared and nothing else happens.
var ErrCancelled = errors.New("selection cancelled")

// Chooser asks the user to pick one of the candidates.
type Chooser interface {
	ChooseOne(prompt string, candidates []string) (string, error)
}

// Default returns the chooser appropriate for the current terminal.
func Default() Chooser {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return &TUIChooser{}
	}
	return &MenuChooser{In: os.Stdin, Out: os.Stderr}
}

// Resolve picks from candidates, auto-selecting without a prompt when
// exactly one exists. Zero candidates is an error: the caller decides
// how to phrase "nothing to choose from", we just name the prompt.
func Resolve(c Chooser, prompt string, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no candidates for %s", prompt)
	case 1:
		return candidates[0], nil
	}
	return c.ChooseOne(prompt, candidates)
}
