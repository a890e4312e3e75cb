package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/koenvw/pane-runner/internal/model"
)

// Config holds the runner pane policy.
type Config struct {
	// Orientation of the split that creates a runner: "vertical"
	// (stacked, the default) or "horizontal" (side by side).
	Orientation string
	// Height is the split size as a percentage of the window.
	Height int
	// UseNearest reuses the nearest inactive pane as the runner
	// instead of splitting, when one exists.
	UseNearest bool
}

// Manager owns the window → runner-pane map. At most one runner is
// tracked per window; an entry is only ever returned after a liveness
// probe against the pane, so a stale record (pane killed, window
// closed) can never be handed out.
//
// The whole flow is synchronous, but the map is mutex-guarded so
// callers may share a Manager across goroutines.
type Manager struct {
	mu     sync.Mutex
	mux    Mux
	reg    Registry
	cfg    Config
	events Events
	panes  map[string]string // window id -> runner pane id
}

// NewManager creates a Manager. A nil registry falls back to
// process-memory records.
func NewManager(m Mux, reg Registry, cfg Config) *Manager {
	if reg == nil {
		reg = NewMemoryRegistry()
	}
	return &Manager{
		mux:   m,
		reg:   reg,
		cfg:   cfg,
		panes: make(map[string]string),
	}
}

// Notify registers an events sink for lifecycle telemetry.
func (m *Manager) Notify(ev Events) {
	m.events = ev
}

// gcLocked drops map entries whose window no longer exists. Called
// before every map read so the map stays bounded by the live window
// count and a closed window's runner is never resurrected.
func (m *Manager) gcLocked(ctx context.Context) {
	windows, err := m.mux.WindowIDs(ctx, "")
	if err != nil {
		return // listing failed; the liveness probe still protects reads
	}
	live := make(map[string]bool, len(windows))
	for _, w := range windows {
		live[w] = true
	}
	for w := range m.panes {
		if !live[w] {
			delete(m.panes, w)
		}
	}
}

// liveRunnerLocked returns the window's runner pane id after verifying
// the pane still exists. Map presence alone is never trusted. A pane
// recorded by an earlier invocation is recovered from the registry.
func (m *Manager) liveRunnerLocked(ctx context.Context, window string) (string, bool) {
	pane := m.panes[window]
	if pane == "" {
		if recorded, err := m.reg.RunnerPane(ctx, window); err == nil {
			pane = recorded
		}
	}
	if pane == "" {
		return "", false
	}
	alive, err := m.mux.PaneExists(ctx, window, pane)
	if err != nil || !alive {
		delete(m.panes, window)
		return "", false
	}
	return pane, true
}

// EnsureRunner returns the window's live runner pane, creating one if
// needed. Creation either reuses the nearest inactive pane (when the
// policy allows and one exists) or splits the window's active pane
// with the configured orientation and size, then changes the new
// pane's directory to dir. Idempotent: a live runner means zero split
// calls.
//
// Any multiplexer failure propagates unchanged and leaves the map and
// registry without a partial entry.
func (m *Manager) EnsureRunner(ctx context.Context, window, dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureLocked(ctx, window, dir)
}

func (m *Manager) ensureLocked(ctx context.Context, window, dir string) (string, error) {
	m.gcLocked(ctx)
	if pane, ok := m.liveRunnerLocked(ctx, window); ok {
		if m.events != nil {
			m.events.RecordRunnerReused(ctx)
		}
		return pane, nil
	}

	var pane string
	split := false
	if m.cfg.UseNearest {
		nearest, err := m.mux.NearestInactivePane(ctx, window)
		if err != nil {
			return "", err
		}
		pane = nearest
	}
	if pane == "" {
		split = true
		// Target the split at the window so the runner lands there even
		// when it is not the current window.
		if err := m.mux.SplitWindow(ctx, window, m.cfg.Orientation, m.cfg.Height); err != nil {
			return "", err
		}
		// The fresh split becomes the window's active pane, so that is
		// the runner we just created.
		active, err := m.mux.ActivePane(ctx, window)
		if err != nil {
			return "", err
		}
		if active == "" {
			return "", fmt.Errorf("no active pane after split in window %s", window)
		}
		pane = active
	}

	if err := m.changeDir(ctx, paneTarget(window, pane), dir); err != nil {
		return "", err
	}
	if err := m.reg.SetRunnerPane(ctx, window, pane); err != nil {
		return "", err
	}
	m.panes[window] = pane
	if m.events != nil {
		if split {
			m.events.RecordRunnerCreated(ctx)
		} else {
			m.events.RecordRunnerReused(ctx)
		}
	}
	return pane, nil
}

// changeDir points the runner pane at dir. Remote directories get the
// login command first, then a cd to the remote path.
func (m *Manager) changeDir(ctx context.Context, target, dir string) error {
	if dir == "" {
		return nil
	}
	if remote, ok := model.ParseRemote(dir); ok {
		if err := m.mux.SendKeys(ctx, target, remote.Login); err != nil {
			return err
		}
		return m.mux.SendKeys(ctx, target, "cd "+remote.Path)
	}
	return m.mux.SendKeys(ctx, target, "cd "+dir)
}

// RunCommand sends text (terminated by Enter) to the window's runner
// pane, creating the runner first if needed, and then restores focus
// to whichever pane was active before the call. The command is
// recorded as the window's last command for later re-runs.
func (m *Manager) RunCommand(ctx context.Context, window, dir, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, err := m.mux.ActivePane(ctx, window)
	if err != nil {
		return err
	}
	pane, err := m.ensureLocked(ctx, window, dir)
	if err != nil {
		return err
	}
	if err := m.mux.SendKeys(ctx, paneTarget(window, pane), text); err != nil {
		return err
	}
	if err := m.reg.SetLastCommand(ctx, window, text); err != nil {
		return err
	}
	if m.events != nil {
		m.events.RecordCommandRun(ctx)
	}
	if prev != "" && prev != pane {
		return m.mux.SelectPane(ctx, paneTarget(window, prev))
	}
	return nil
}

// LastCommand returns the last command run in the window's runner, or
// "" when none has been recorded.
func (m *Manager) LastCommand(ctx context.Context, window string) (string, error) {
	return m.reg.LastCommand(ctx, window)
}

// IsAlive reports whether the window has a runner whose pane still
// exists.
func (m *Manager) IsAlive(ctx context.Context, window string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gcLocked(ctx)
	_, ok := m.liveRunnerLocked(ctx, window)
	return ok
}

// Close kills the window's runner pane and forgets it. Calling it when
// no runner is tracked is a no-op.
func (m *Manager) Close(ctx context.Context, window string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gcLocked(ctx)

	pane, ok := m.liveRunnerLocked(ctx, window)
	if ok {
		if err := m.mux.KillPane(ctx, paneTarget(window, pane)); err != nil {
			return err
		}
		if m.events != nil {
			m.events.RecordRunnerClosed(ctx)
		}
	}
	delete(m.panes, window)
	return m.reg.ClearRunnerPane(ctx, window)
}

// requireRunner returns the live runner pane target or ErrNoRunner.
// Used by the operations that must not create a runner implicitly.
func (m *Manager) requireRunner(ctx context.Context, window string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gcLocked(ctx)

	pane, ok := m.liveRunnerLocked(ctx, window)
	if !ok {
		return "", ErrNoRunner
	}
	return paneTarget(window, pane), nil
}

// Interrupt sends C-c to the runner pane.
func (m *Manager) Interrupt(ctx context.Context, window string) error {
	target, err := m.requireRunner(ctx, window)
	if err != nil {
		return err
	}
	return m.mux.SendRawKey(ctx, target, "C-c")
}

// ClearHistory clears the runner pane's scrollback.
func (m *Manager) ClearHistory(ctx context.Context, window string) error {
	target, err := m.requireRunner(ctx, window)
	if err != nil {
		return err
	}
	return m.mux.ClearHistory(ctx, target)
}

// Zoom toggles zoom on the runner pane.
func (m *Manager) Zoom(ctx context.Context, window string) error {
	target, err := m.requireRunner(ctx, window)
	if err != nil {
		return err
	}
	return m.mux.ZoomPane(ctx, target)
}

// Inspect focuses the runner pane and enters copy mode so its output
// can be scrolled and searched.
func (m *Manager) Inspect(ctx context.Context, window string) error {
	target, err := m.requireRunner(ctx, window)
	if err != nil {
		return err
	}
	if err := m.mux.SelectPane(ctx, target); err != nil {
		return err
	}
	return m.mux.CopyMode(ctx)
}

func paneTarget(window, pane string) string {
	return window + "." + pane
}
