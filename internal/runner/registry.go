package runner

import "context"

// Registry records which pane is the runner for a window, and the last
// command sent to it, across one-shot process invocations. The tmux
// implementation stores both in window options, so the record lives
// exactly as long as the window does. Records are hints only: the
// manager re-verifies pane liveness before trusting them.
type Registry interface {
	RunnerPane(ctx context.Context, window string) (string, error)
	SetRunnerPane(ctx context.Context, window, pane string) error
	ClearRunnerPane(ctx context.Context, window string) error

	LastCommand(ctx context.Context, window string) (string, error)
	SetLastCommand(ctx context.Context, window, command string) error
}

// Window option names used by the tmux-backed registry.
const (
	optRunnerPane = "@runner_pane"
	optLastCmd    = "@runner_last_cmd"
)

// WindowOptions is the slice of mux operations the tmux registry needs.
type WindowOptions interface {
	SetWindowOption(ctx context.Context, window, name, value string) error
	WindowOption(ctx context.Context, window, name string) (string, error)
	UnsetWindowOption(ctx context.Context, window, name string) error
}

// TmuxRegistry stores runner records in tmux window options.
type TmuxRegistry struct {
	Options WindowOptions
}

func (r *TmuxRegistry) RunnerPane(ctx context.Context, window string) (string, error) {
	return r.Options.WindowOption(ctx, window, optRunnerPane)
}

func (r *TmuxRegistry) SetRunnerPane(ctx context.Context, window, pane string) error {
	return r.Options.SetWindowOption(ctx, window, optRunnerPane, pane)
}

func (r *TmuxRegistry) ClearRunnerPane(ctx context.Context, window string) error {
	return r.Options.UnsetWindowOption(ctx, window, optRunnerPane)
}

func (r *TmuxRegistry) LastCommand(ctx context.Context, window string) (string, error) {
	return r.Options.WindowOption(ctx, window, optLastCmd)
}

func (r *TmuxRegistry) SetLastCommand(ctx context.Context, window, command string) error {
	return r.Options.SetWindowOption(ctx, window, optLastCmd, command)
}

// MemoryRegistry keeps records in process memory. Used by tests and as
// the fallback when window options are unavailable.
type MemoryRegistry struct {
	panes map[string]string
	last  map[string]string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		panes: make(map[string]string),
		last:  make(map[string]string),
	}
}

func (r *MemoryRegistry) RunnerPane(_ context.Context, window string) (string, error) {
	return r.panes[window], nil
}

func (r *MemoryRegistry) SetRunnerPane(_ context.Context, window, pane string) error {
	r.panes[window] = pane
	return nil
}

func (r *MemoryRegistry) ClearRunnerPane(_ context.Context, window string) error {
	delete(r.panes, window)
	return nil
}

func (r *MemoryRegistry) LastCommand(_ context.Context, window string) (string, error) {
	return r.last[window], nil
}

func (r *MemoryRegistry) SetLastCommand(_ context.Context, window, command string) error {
	r.last[window] = command
	return nil
}
