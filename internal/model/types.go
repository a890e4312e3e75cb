package model

import (
	"fmt"
	"strings"
)

// placeholder stands in for an unset Selection component when rendering
// a target for display. tmux would reject it, which is intentional:
// only complete selections may be used for send-keys.
const placeholder = "?"

// Selection is the currently chosen session/window/pane triple.
// Components are optional until set; an empty string means unset.
type Selection struct {
	Session string
	Window  string
	Pane    string
}

// SetSession records the chosen session.
func (s *Selection) SetSession(name string) { s.Session = name }

// SetWindow records the chosen window index or name.
func (s *Selection) SetWindow(id string) { s.Window = id }

// SetPane records the chosen pane index.
func (s *Selection) SetPane(id string) { s.Pane = id }

// Clear resets all three components. Called on user cancellation.
func (s *Selection) Clear() { *s = Selection{} }

// IsComplete reports whether all three components are set.
// Sending keys requires a complete selection.
func (s *Selection) IsComplete() bool {
	return s.Session != "" && s.Window != "" && s.Pane != ""
}

// Target renders the selection as "session:window.pane". Unset
// components render as "?" so partial selections remain visible in
// prompts and error messages.
func (s *Selection) Target() string {
	return FormatTarget(s.Session, s.Window, s.Pane)
}

// FormatTarget builds a fully qualified tmux target string.
func FormatTarget(session, window, pane string) string {
	if session == "" {
		session = placeholder
	}
	if window == "" {
		window = placeholder
	}
	if pane == "" {
		pane = placeholder
	}
	return fmt.Sprintf("%s:%s.%s", session, window, pane)
}

// ParseTarget splits a tmux target string "session:window.pane" into a
// Selection. The session part may itself contain colons, so the last
// ':' and the last '.' win.
func ParseTarget(target string) (Selection, error) {
	colon := strings.LastIndex(target, ":")
	if colon < 0 {
		return Selection{}, fmt.Errorf("invalid target %q: missing ':'", target)
	}
	session := target[:colon]
	rest := target[colon+1:]

	dot := strings.LastIndex(rest, ".")
	if dot < 0 {
		return Selection{}, fmt.Errorf("invalid target %q: missing '.'", target)
	}
	return Selection{
		Session: session,
		Window:  rest[:dot],
		Pane:    rest[dot+1:],
	}, nil
}

// Buffer is one entry from the tmux paste-buffer listing.
type Buffer struct {
	// ID addresses the buffer: a bare index ("3") in the legacy
	// listing format, a name ("buffer0003") in the modern one.
	ID string
	// Size is the buffer length in bytes as reported by tmux.
	Size int
	// Sample is the quoted text excerpt from the listing line.
	Sample string
}
