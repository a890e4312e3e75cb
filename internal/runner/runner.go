// Package runner tracks, per tmux window, which pane is the designated
// command runner: the pane that receives commands sent from the
// editor. Runners are created on demand, re-verified for liveness on
// every read, and garbage-collected when their window disappears.
package runner

import (
	"context"
	"errors"
)

// ErrNoRunner is the precondition failure for runner-dependent
// operations (inspect, interrupt, clear-history, zoom). They never
// create a runner implicitly.
var ErrNoRunner = errors.New("no runner pane in this window")

// Events is notified of runner lifecycle transitions. *otel.Metrics
// satisfies it; a nil events sink disables reporting.
type Events interface {
	RecordRunnerCreated(ctx context.Context)
	RecordRunnerReused(ctx context.Context)
	RecordRunnerClosed(ctx context.Context)
	RecordCommandRun(ctx context.Context)
}

// Mux is the slice of multiplexer operations the manager needs.
// *mux.Tmux satisfies it.
type Mux interface {
	WindowIDs(ctx context.Context, session string) ([]string, error)
	ActivePane(ctx context.Context, target string) (string, error)
	NearestInactivePane(ctx context.Context, target string) (string, error)
	PaneExists(ctx context.Context, target, pane string) (bool, error)
	SplitWindow(ctx context.Context, target, orientation string, size int) error
	SelectPane(ctx context.Context, target string) error
	SendKeys(ctx context.Context, target, text string) error
	SendRawKey(ctx context.Context, target, key string) error
	KillPane(ctx context.Context, target string) error
	ClearHistory(ctx context.Context, target string) error
	ZoomPane(ctx context.Context, target string) error
	CopyMode(ctx context.Context) error
}
