package mux

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/koenvw/pane-runner/internal/model"
)

// activeMarker is the suffix tmux appends to the active entry in its
// default list-panes / list-windows output.
const activeMarker = "(active)"

// entryIDRe captures the leading identifier of a listing line, e.g.
// "0" from "0: [80x24] %0 (active)" or from a bare "1".
var entryIDRe = regexp.MustCompile(`^([^:\s]+):?`)

// EntryID extracts the identifier at the start of a listing line.
// Returns ("", false) for lines that don't start with one.
func EntryID(line string) (string, bool) {
	m := entryIDRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ActiveEntry returns the id of the first line carrying the active
// marker. No match returns ("", false) rather than an error; callers
// decide whether a missing active entry matters.
func ActiveEntry(lines []string) (string, bool) {
	for _, line := range lines {
		if strings.Contains(line, activeMarker) {
			return EntryID(line)
		}
	}
	return "", false
}

// NearestInactive returns the id of the first line NOT carrying the
// active marker, used as a fallback pane to reuse instead of splitting.
func NearestInactive(lines []string) (string, bool) {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.Contains(line, activeMarker) {
			return EntryID(line)
		}
	}
	return "", false
}

// ParseBuffers applies a buffer listing format to raw list-buffers
// lines. Lines that don't match are skipped, never an error.
func ParseBuffers(lines []string, format BufferFormat) []model.Buffer {
	var buffers []model.Buffer
	for _, line := range lines {
		m := format.Pattern.FindStringSubmatch(line)
		if m == nil || len(m) < 4 {
			continue
		}
		size, _ := strconv.Atoi(m[2])
		buffers = append(buffers, model.Buffer{
			ID:     m[1],
			Size:   size,
			Sample: m[3],
		})
	}
	return buffers
}
