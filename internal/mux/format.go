package mux

import (
	"fmt"
	"regexp"
)

// BufferFormat describes how one tmux version renders list-buffers
// lines and how buffers are addressed on that version. The pattern's
// capture groups are fixed: 1 = id, 2 = byte count, 3 = sample text.
type BufferFormat struct {
	Name string
	// Pattern matches one listing line.
	Pattern *regexp.Regexp
	// ByName is true when buffers are addressed by name ("buffer0003")
	// rather than by numeric index.
	ByName bool
}

// The two known listing formats. Older servers list bare numeric ids;
// newer ones prefix a literal "buffer" tag and address by name.
var (
	legacyFormat = BufferFormat{
		Name:    "legacy",
		Pattern: regexp.MustCompile(`^(\d+): (\d+) bytes: "(.*)"`),
		ByName:  false,
	}
	modernFormat = BufferFormat{
		Name:    "modern",
		Pattern: regexp.MustCompile(`^(buffer\d+): (\d+) bytes: "(.*)"`),
		ByName:  true,
	}
)

// FormatByName looks up a built-in buffer format. The empty string
// defaults to modern; version detection is deliberately not attempted.
func FormatByName(name string) (BufferFormat, error) {
	switch name {
	case "", "modern":
		return modernFormat, nil
	case "legacy":
		return legacyFormat, nil
	default:
		return BufferFormat{}, fmt.Errorf("unknown buffer format %q (supported: modern, legacy)", name)
	}
}

// ValidateID checks that a user-supplied buffer id matches the
// format's addressing mode. Index-addressed servers reject names, so
// catching a name (or vice versa) here gives a clear error instead of
// a failed tmux call.
func (f BufferFormat) ValidateID(id string) error {
	numeric := id != ""
	for _, r := range id {
		if r < '0' || r > '9' {
			numeric = false
			break
		}
	}
	if f.ByName && numeric {
		return fmt.Errorf("buffer id %q is a numeric index, but the %s format addresses buffers by name", id, f.Name)
	}
	if !f.ByName && !numeric {
		return fmt.Errorf("buffer id %q is not a numeric index, which the %s format requires", id, f.Name)
	}
	return nil
}

// CustomFormat builds a format from a user-supplied pattern for tmux
// versions whose listing matches neither built-in. The pattern must
// keep the fixed capture-group contract.
func CustomFormat(pattern string, byName bool) (BufferFormat, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return BufferFormat{}, fmt.Errorf("invalid buffer pattern %q: %w", pattern, err)
	}
	return BufferFormat{Name: "custom", Pattern: re, ByName: byName}, nil
}
