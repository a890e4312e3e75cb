package mux

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"
)

// fakeExecer scripts tmux output per subcommand and records every
// argument list, so tests can assert the exact commands issued.
type fakeExecer struct {
	calls   [][]string
	outputs map[string]string // keyed by subcommand
	errs    map[string]error  // keyed by subcommand
}

func (f *fakeExecer) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if err, ok := f.errs[args[0]]; ok {
		return f.outputs[args[0]], err
	}
	return f.outputs[args[0]], nil
}

// exitError builds a real *exec.ExitError with scripted stderr, the
// shape os/exec hands back for a non-zero tmux exit.
func exitError(t *testing.T, stderr string) *exec.ExitError {
	t.Helper()
	err := exec.Command("false").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("running false: expected *exec.ExitError, got %v", err)
	}
	exitErr.Stderr = []byte(stderr)
	return exitErr
}

func TestRunMapsNoServerToErrNotRunning(t *testing.T) {
	for _, stderr := range []string{
		"no server running on /tmp/tmux-1000/default",
		"error connecting to /tmp/tmux-1000/default (No such file or directory)",
		"server exited unexpectedly",
	} {
		t.Run(stderr, func(t *testing.T) {
			f := &fakeExecer{errs: map[string]error{"list-sessions": exitError(t, stderr)}}
			tm := NewTmuxWithExecer(f)

			_, err := tm.ListSessions(context.Background())
			if !errors.Is(err, ErrNotRunning) {
				t.Errorf("expected ErrNotRunning, got %v", err)
			}
		})
	}
}

func TestRunWrapsFailuresAsExecError(t *testing.T) {
	f := &fakeExecer{errs: map[string]error{"kill-pane": exitError(t, "can't find pane: 9")}}
	tm := NewTmuxWithExecer(f)

	err := tm.KillPane(context.Background(), "1.9")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %v", err)
	}
	if got := execErr.Args[0]; got != "kill-pane" {
		t.Errorf("ExecError.Args[0] = %q, want kill-pane", got)
	}
	if msg := execErr.Error(); msg == "" || !reflect.DeepEqual(execErr.Args, []string{"kill-pane", "-t", "1.9"}) {
		t.Errorf("ExecError should carry the failing args, got %q / %v", msg, execErr.Args)
	}
}

func TestServerRunning(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		f := &fakeExecer{}
		tm := NewTmuxWithExecer(f)
		if err := tm.ServerRunning(context.Background()); err != nil {
			t.Errorf("ServerRunning() = %v, want nil", err)
		}
	})

	t.Run("no sessions counts as not running", func(t *testing.T) {
		f := &fakeExecer{errs: map[string]error{"has-session": exitError(t, "no current session")}}
		tm := NewTmuxWithExecer(f)
		if err := tm.ServerRunning(context.Background()); !errors.Is(err, ErrNotRunning) {
			t.Errorf("ServerRunning() = %v, want ErrNotRunning", err)
		}
	})
}

func TestCommandArguments(t *testing.T) {
	// Each operation must issue exactly the documented tmux invocation.
	tests := []struct {
		name string
		call func(tm *Tmux, ctx context.Context) error
		want []string
	}{
		{
			name: "send keys terminates with C-m",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SendKeys(ctx, "work:2.1", "make test")
			},
			want: []string{"send-keys", "-t", "work:2.1", "make test", "C-m"},
		},
		{
			name: "raw key has no C-m",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SendRawKey(ctx, "2.1", "C-c")
			},
			want: []string{"send-keys", "-t", "2.1", "C-c"},
		},
		{
			name: "vertical split with size",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SplitWindow(ctx, "", "vertical", 35)
			},
			want: []string{"split-window", "-v", "-p", "35"},
		},
		{
			name: "horizontal split without size",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SplitWindow(ctx, "", "horizontal", 0)
			},
			want: []string{"split-window", "-h"},
		},
		{
			name: "split targeted at a window",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SplitWindow(ctx, "2", "vertical", 35)
			},
			want: []string{"split-window", "-v", "-p", "35", "-t", "2"},
		},
		{
			name: "clear-history takes a positional target",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.ClearHistory(ctx, "2.1")
			},
			want: []string{"clear-history", "2.1"},
		},
		{
			name: "zoom is resize-pane -Z",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.ZoomPane(ctx, "2.1")
			},
			want: []string{"resize-pane", "-Z", "-t", "2.1"},
		},
		{
			name: "copy-mode takes no target",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.CopyMode(ctx)
			},
			want: []string{"copy-mode"},
		},
		{
			name: "kill other panes",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.KillOtherPanes(ctx, "2.1")
			},
			want: []string{"kill-pane", "-a", "-t", "2.1"},
		},
		{
			name: "show most recent buffer",
			call: func(tm *Tmux, ctx context.Context) error {
				_, err := tm.ShowBuffer(ctx, "")
				return err
			},
			want: []string{"show-buffer"},
		},
		{
			name: "show named buffer",
			call: func(tm *Tmux, ctx context.Context) error {
				_, err := tm.ShowBuffer(ctx, "buffer0003")
				return err
			},
			want: []string{"show-buffer", "-b", "buffer0003"},
		},
		{
			name: "set buffer with id",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SetBuffer(ctx, "3", "some text")
			},
			want: []string{"set-buffer", "-b", "3", "some text"},
		},
		{
			name: "adjacent new window",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.NewWindow(ctx, true)
			},
			want: []string{"new-window", "-a"},
		},
		{
			name: "switch client",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SwitchClient(ctx, "work")
			},
			want: []string{"switch-client", "-t", "work"},
		},
		{
			name: "current window via display-message",
			call: func(tm *Tmux, ctx context.Context) error {
				_, err := tm.CurrentWindow(ctx, "work")
				return err
			},
			want: []string{"display-message", "-p", "-t", "work", "#I"},
		},
		{
			name: "current window of the attached client",
			call: func(tm *Tmux, ctx context.Context) error {
				_, err := tm.CurrentWindow(ctx, "")
				return err
			},
			want: []string{"display-message", "-p", "#I"},
		},
		{
			name: "set window option",
			call: func(tm *Tmux, ctx context.Context) error {
				return tm.SetWindowOption(ctx, "2", "@runner_pane", "1")
			},
			want: []string{"set-option", "-w", "-t", "2", "@runner_pane", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeExecer{}
			tm := NewTmuxWithExecer(f)
			if err := tt.call(tm, context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f.calls) != 1 || !reflect.DeepEqual(f.calls[0], tt.want) {
				t.Errorf("issued %v, want single call %v", f.calls, tt.want)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	f := &fakeExecer{outputs: map[string]string{"list-sessions": "work\nscratch\n"}}
	tm := NewTmuxWithExecer(f)

	got, err := tm.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"work", "scratch"}) {
		t.Errorf("ListSessions() = %v", got)
	}
	if !reflect.DeepEqual(f.calls[0], []string{"list-sessions", "-F", "#S"}) {
		t.Errorf("issued %v", f.calls[0])
	}
}

func TestPaneExists(t *testing.T) {
	f := &fakeExecer{outputs: map[string]string{"list-panes": "0\n1\n"}}
	tm := NewTmuxWithExecer(f)
	ctx := context.Background()

	ok, err := tm.PaneExists(ctx, "2", "1")
	if err != nil || !ok {
		t.Errorf("PaneExists(2, 1) = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = tm.PaneExists(ctx, "2", "5")
	if err != nil || ok {
		t.Errorf("PaneExists(2, 5) = (%v, %v), want (false, nil)", ok, err)
	}
	if !reflect.DeepEqual(f.calls[0], []string{"list-panes", "-t", "2", "-F", "#P"}) {
		t.Errorf("issued %v", f.calls[0])
	}
}

func TestActivePaneAndNearestInactive(t *testing.T) {
	f := &fakeExecer{outputs: map[string]string{
		"list-panes": "0: [80x24] %0 (active)\n1: [80x11] %1\n",
	}}
	tm := NewTmuxWithExecer(f)
	ctx := context.Background()

	active, err := tm.ActivePane(ctx, "2")
	if err != nil || active != "0" {
		t.Errorf("ActivePane = (%q, %v), want (\"0\", nil)", active, err)
	}
	nearest, err := tm.NearestInactivePane(ctx, "2")
	if err != nil || nearest != "1" {
		t.Errorf("NearestInactivePane = (%q, %v), want (\"1\", nil)", nearest, err)
	}
}

func TestWindowOptionMissingIsEmpty(t *testing.T) {
	f := &fakeExecer{errs: map[string]error{"show-options": exitError(t, "invalid option: @runner_pane")}}
	tm := NewTmuxWithExecer(f)

	got, err := tm.WindowOption(context.Background(), "2", "@runner_pane")
	if err != nil || got != "" {
		t.Errorf("WindowOption = (%q, %v), want (\"\", nil)", got, err)
	}
}

func TestObserveSeesEveryCall(t *testing.T) {
	f := &fakeExecer{errs: map[string]error{"kill-pane": exitError(t, "can't find pane")}}
	tm := NewTmuxWithExecer(f)

	type obs struct {
		sub    string
		failed bool
	}
	var seen []obs
	tm.Observe(func(subcommand string, err error) {
		seen = append(seen, obs{subcommand, err != nil})
	})

	ctx := context.Background()
	_ = tm.CopyMode(ctx)
	_ = tm.KillPane(ctx, "1.9")

	want := []obs{{"copy-mode", false}, {"kill-pane", true}}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("observer saw %v, want %v", seen, want)
	}
}
