package mux

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/koenvw/pane-runner/internal/model"
)

// Tmux drives the tmux command-line interface. Every method is one or
// more synchronous subprocess calls; nothing is cached between calls.
type Tmux struct {
	execer Execer
	// observer, when set, is told about every invocation. Used for
	// telemetry; never affects behavior.
	observer func(subcommand string, err error)
}

// NewTmux creates a Tmux backed by real subprocess execution.
func NewTmux() *Tmux {
	return &Tmux{execer: execRunner{}}
}

// NewTmuxWithExecer creates a Tmux with a custom Execer. Tests use this
// to script tmux output and record argument lists.
func NewTmuxWithExecer(e Execer) *Tmux {
	return &Tmux{execer: e}
}

// Name returns "tmux".
func (t *Tmux) Name() string { return "tmux" }

// Observe registers a callback invoked after every tmux call with the
// subcommand name and its outcome.
func (t *Tmux) Observe(fn func(subcommand string, err error)) {
	t.observer = fn
}

// run executes one tmux command and returns trimmed stdout.
// Non-zero exits become *ExecError; an unreachable server becomes
// ErrNotRunning.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	out, err := t.execer.Run(ctx, "tmux", args...)
	if t.observer != nil && len(args) > 0 {
		defer func() { t.observer(args[0], err) }()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			combined := out + string(exitErr.Stderr)
			if isNoServer(combined) {
				return "", ErrNotRunning
			}
			return "", &ExecError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Output:   combined,
			}
		}
		return "", fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// runLines executes one tmux command and splits stdout on line
// boundaries with trailing blank lines trimmed.
func (t *Tmux) runLines(ctx context.Context, args ...string) ([]string, error) {
	out, err := t.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// ServerRunning probes the tmux server with has-session. Returns nil
// when reachable, ErrNotRunning when not.
func (t *Tmux) ServerRunning(ctx context.Context) error {
	_, err := t.run(ctx, "has-session")
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotRunning) {
		return ErrNotRunning
	}
	// has-session exits non-zero when the server is up but has no
	// sessions; for our purposes that is still "not running".
	var exitErr *ExecError
	if errors.As(err, &exitErr) {
		return ErrNotRunning
	}
	return err
}

// ListSessions returns all session names.
func (t *Tmux) ListSessions(ctx context.Context) ([]string, error) {
	return t.runLines(ctx, "list-sessions", "-F", "#S")
}

// WindowIDs returns the window indices of a session. An empty session
// scopes to the current one.
func (t *Tmux) WindowIDs(ctx context.Context, session string) ([]string, error) {
	args := []string{"list-windows", "-F", "#I"}
	if session != "" {
		args = append(args, "-t", session)
	}
	return t.runLines(ctx, args...)
}

// ActiveWindow returns the id of the active window in a session by
// parsing the default list-windows output. Returns ("", nil) when no
// line carries the active marker.
func (t *Tmux) ActiveWindow(ctx context.Context, session string) (string, error) {
	args := []string{"list-windows"}
	if session != "" {
		args = append(args, "-t", session)
	}
	lines, err := t.runLines(ctx, args...)
	if err != nil {
		return "", err
	}
	id, _ := ActiveEntry(lines)
	return id, nil
}

// CurrentWindow asks tmux for a session's current window index. An
// empty session asks the attached client, which requires one; callers
// without a client fall back to ActiveWindow.
func (t *Tmux) CurrentWindow(ctx context.Context, session string) (string, error) {
	args := []string{"display-message", "-p"}
	if session != "" {
		args = append(args, "-t", session)
	}
	args = append(args, "#I")
	return t.run(ctx, args...)
}

// PaneIDs returns the pane indices under target (a window or session).
// An empty target scopes to the current window.
func (t *Tmux) PaneIDs(ctx context.Context, target string) ([]string, error) {
	args := []string{"list-panes"}
	if target != "" {
		args = append(args, "-t", target)
	}
	args = append(args, "-F", "#P")
	return t.runLines(ctx, args...)
}

// PaneExists reports whether pane is currently listed under target.
// This is the liveness probe for runner panes: map presence is never
// trusted without it.
func (t *Tmux) PaneExists(ctx context.Context, target, pane string) (bool, error) {
	ids, err := t.PaneIDs(ctx, target)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == pane {
			return true, nil
		}
	}
	return false, nil
}

// ActivePane returns the id of the active pane under target by parsing
// the default list-panes output. Returns ("", nil) when no line
// carries the active marker; callers decide whether that is an error.
func (t *Tmux) ActivePane(ctx context.Context, target string) (string, error) {
	lines, err := t.paneLines(ctx, target)
	if err != nil {
		return "", err
	}
	id, _ := ActiveEntry(lines)
	return id, nil
}

// NearestInactivePane returns the first pane under target that is not
// marked active, the fallback target when reusing a pane instead of
// splitting. Returns ("", nil) when every pane is active.
func (t *Tmux) NearestInactivePane(ctx context.Context, target string) (string, error) {
	lines, err := t.paneLines(ctx, target)
	if err != nil {
		return "", err
	}
	id, _ := NearestInactive(lines)
	return id, nil
}

func (t *Tmux) paneLines(ctx context.Context, target string) ([]string, error) {
	args := []string{"list-panes"}
	if target != "" {
		args = append(args, "-t", target)
	}
	return t.runLines(ctx, args...)
}

// SplitWindow splits a pane. An empty target splits the current pane;
// otherwise the target window's active pane is split, so the new pane
// lands in that window even when it is not the current one.
// Orientation "horizontal" lays the panes side by side (-h), anything
// else stacks them (-v). A size between 1 and 99 is passed as a
// percentage.
func (t *Tmux) SplitWindow(ctx context.Context, target, orientation string, size int) error {
	args := []string{"split-window"}
	if orientation == "horizontal" {
		args = append(args, "-h")
	} else {
		args = append(args, "-v")
	}
	if size > 0 && size < 100 {
		args = append(args, "-p", fmt.Sprint(size))
	}
	if target != "" {
		args = append(args, "-t", target)
	}
	_, err := t.run(ctx, args...)
	return err
}

// SelectPane moves focus to the target pane.
func (t *Tmux) SelectPane(ctx context.Context, target string) error {
	_, err := t.run(ctx, "select-pane", "-t", target)
	return err
}

// SendKeys types text into the target pane and presses Enter, as a
// single send-keys invocation terminated by C-m.
func (t *Tmux) SendKeys(ctx context.Context, target, text string) error {
	_, err := t.run(ctx, "send-keys", "-t", target, text, "C-m")
	return err
}

// SendRawKey sends one key (e.g. "C-c") without a terminating Enter.
func (t *Tmux) SendRawKey(ctx context.Context, target, key string) error {
	_, err := t.run(ctx, "send-keys", "-t", target, key)
	return err
}

// KillPane kills the target pane.
func (t *Tmux) KillPane(ctx context.Context, target string) error {
	_, err := t.run(ctx, "kill-pane", "-t", target)
	return err
}

// KillOtherPanes kills every pane in the target's window except the
// target itself.
func (t *Tmux) KillOtherPanes(ctx context.Context, target string) error {
	_, err := t.run(ctx, "kill-pane", "-a", "-t", target)
	return err
}

// ClearHistory clears the scrollback of the target pane.
func (t *Tmux) ClearHistory(ctx context.Context, target string) error {
	_, err := t.run(ctx, "clear-history", target)
	return err
}

// ZoomPane toggles zoom on the target pane.
func (t *Tmux) ZoomPane(ctx context.Context, target string) error {
	_, err := t.run(ctx, "resize-pane", "-Z", "-t", target)
	return err
}

// CopyMode puts the current pane into copy mode. Callers select the
// pane first; the command itself takes no target.
func (t *Tmux) CopyMode(ctx context.Context) error {
	_, err := t.run(ctx, "copy-mode")
	return err
}

// ListBuffers returns the raw paste-buffer listing lines. The caller
// applies the configured buffer format (see ParseBuffers).
func (t *Tmux) ListBuffers(ctx context.Context) ([]string, error) {
	return t.runLines(ctx, "list-buffers")
}

// ShowBuffer prints the contents of a paste buffer. An empty id means
// the most recent buffer.
func (t *Tmux) ShowBuffer(ctx context.Context, id string) (string, error) {
	args := []string{"show-buffer"}
	if id != "" {
		args = append(args, "-b", id)
	}
	return t.run(ctx, args...)
}

// SetBuffer stores data as a paste buffer. An empty id lets tmux pick
// the buffer; otherwise -b addresses it by index or name depending on
// the server version.
func (t *Tmux) SetBuffer(ctx context.Context, id, data string) error {
	args := []string{"set-buffer"}
	if id != "" {
		args = append(args, "-b", id)
	}
	args = append(args, data)
	_, err := t.run(ctx, args...)
	return err
}

// NewWindow creates a window. With adjacent set it is inserted after
// the current one (-a) instead of at the end of the window list.
func (t *Tmux) NewWindow(ctx context.Context, adjacent bool) error {
	args := []string{"new-window"}
	if adjacent {
		args = append(args, "-a")
	}
	_, err := t.run(ctx, args...)
	return err
}

// SwitchClient moves the attached client to the target session.
func (t *Tmux) SwitchClient(ctx context.Context, target string) error {
	_, err := t.run(ctx, "switch-client", "-t", target)
	return err
}

// SelectWindow selects the target window.
func (t *Tmux) SelectWindow(ctx context.Context, target string) error {
	_, err := t.run(ctx, "select-window", "-t", target)
	return err
}

// SetWindowOption sets a window option (used for @runner_pane and
// friends). State recorded this way lives in the tmux server, not in
// this process.
func (t *Tmux) SetWindowOption(ctx context.Context, window, name, value string) error {
	_, err := t.run(ctx, "set-option", "-w", "-t", window, name, value)
	return err
}

// WindowOption reads a window option. Missing options return ("", nil).
func (t *Tmux) WindowOption(ctx context.Context, window, name string) (string, error) {
	out, err := t.run(ctx, "show-options", "-w", "-v", "-t", window, name)
	if err != nil {
		var exitErr *ExecError
		// tmux exits non-zero for unknown user options on some versions.
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// UnsetWindowOption removes a window option. Safe when already absent.
func (t *Tmux) UnsetWindowOption(ctx context.Context, window, name string) error {
	_, err := t.run(ctx, "set-option", "-w", "-u", "-t", window, name)
	var exitErr *ExecError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// Buffers lists paste buffers parsed with the given format.
func (t *Tmux) Buffers(ctx context.Context, format BufferFormat) ([]model.Buffer, error) {
	lines, err := t.ListBuffers(ctx)
	if err != nil {
		return nil, err
	}
	return ParseBuffers(lines, format), nil
}
