package mux

import (
	"reflect"
	"testing"

	"github.com/koenvw/pane-runner/internal/model"
)

func TestActiveEntry(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   string
		wantOK bool
	}{
		{
			name:   "active pane first",
			lines:  []string{"0: 80x24 (active)", "1: 80x24"},
			want:   "0",
			wantOK: true,
		},
		{
			name:   "active pane second",
			lines:  []string{"0: 80x24", "1: 80x24 (active)"},
			want:   "1",
			wantOK: true,
		},
		{
			name:   "window listing with flags",
			lines:  []string{"1: vim* (2 panes) [80x24]", "2: shell (1 panes) [80x24] (active)"},
			want:   "2",
			wantOK: true,
		},
		{
			name:   "no active marker",
			lines:  []string{"0: 80x24", "1: 80x24"},
			wantOK: false,
		},
		{
			name:   "empty listing",
			lines:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ActiveEntry(tt.lines)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ActiveEntry(%v) = (%q, %v), want (%q, %v)",
					tt.lines, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNearestInactive(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   string
		wantOK bool
	}{
		{
			name:   "first pane active",
			lines:  []string{"0 (active)", "1"},
			want:   "1",
			wantOK: true,
		},
		{
			name:   "first pane inactive",
			lines:  []string{"0: 80x24", "1: 80x24 (active)"},
			want:   "0",
			wantOK: true,
		},
		{
			name:   "single active pane",
			lines:  []string{"0: 80x24 (active)"},
			wantOK: false,
		},
		{
			name:   "blank lines skipped",
			lines:  []string{"", "0 (active)", "", "2"},
			want:   "2",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestInactive(tt.lines)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NearestInactive(%v) = (%q, %v), want (%q, %v)",
					tt.lines, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEntryID(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"0: [80x24] %0 (active)", "0", true},
		{"1", "1", true},
		{"buffer0003: 42 bytes", "buffer0003", true},
		{"  2: indented", "2", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := EntryID(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("EntryID(%q) = (%q, %v), want (%q, %v)",
					tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseBuffers(t *testing.T) {
	legacy, err := FormatByName("legacy")
	if err != nil {
		t.Fatalf("FormatByName(legacy): %v", err)
	}
	modern, err := FormatByName("modern")
	if err != nil {
		t.Fatalf("FormatByName(modern): %v", err)
	}

	tests := []struct {
		name   string
		lines  []string
		format BufferFormat
		want   []model.Buffer
	}{
		{
			name:   "legacy listing",
			lines:  []string{`0: 17 bytes: "git push origin"`, `1: 5 bytes: "make"`},
			format: legacy,
			want: []model.Buffer{
				{ID: "0", Size: 17, Sample: "git push origin"},
				{ID: "1", Size: 5, Sample: "make"},
			},
		},
		{
			name:   "modern listing",
			lines:  []string{`buffer0001: 42 bytes: "scp remote:file ."`},
			format: modern,
			want:   []model.Buffer{{ID: "buffer0001", Size: 42, Sample: "scp remote:file ."}},
		},
		{
			name:   "modern lines under legacy format skipped",
			lines:  []string{`buffer0001: 42 bytes: "text"`},
			format: legacy,
			want:   nil,
		},
		{
			name:   "garbage lines skipped",
			lines:  []string{"not a buffer line", `0: 3 bytes: "abc"`},
			format: legacy,
			want:   []model.Buffer{{ID: "0", Size: 3, Sample: "abc"}},
		},
		{
			name:   "empty listing",
			lines:  nil,
			format: modern,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBuffers(tt.lines, tt.format)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseBuffers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatByName(t *testing.T) {
	f, err := FormatByName("")
	if err != nil {
		t.Fatalf("FormatByName(\"\"): %v", err)
	}
	if f.Name != "modern" || !f.ByName {
		t.Errorf("default format = %q (ByName %v), want modern addressed by name", f.Name, f.ByName)
	}

	f, err = FormatByName("legacy")
	if err != nil {
		t.Fatalf("FormatByName(legacy): %v", err)
	}
	if f.ByName {
		t.Error("legacy format should be addressed by index, not name")
	}

	if _, err := FormatByName("ancient"); err == nil {
		t.Error("expected error for unknown format name")
	}
}

func TestValidateID(t *testing.T) {
	legacy, _ := FormatByName("legacy")
	modern, _ := FormatByName("modern")

	tests := []struct {
		name    string
		format  BufferFormat
		id      string
		wantErr bool
	}{
		{name: "legacy accepts index", format: legacy, id: "3"},
		{name: "legacy rejects name", format: legacy, id: "buffer0003", wantErr: true},
		{name: "legacy rejects empty", format: legacy, id: "", wantErr: true},
		{name: "modern accepts name", format: modern, id: "buffer0003"},
		{name: "modern rejects bare index", format: modern, id: "3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) on %s = %v, wantErr %v",
					tt.id, tt.format.Name, err, tt.wantErr)
			}
		})
	}
}

func TestCustomFormat(t *testing.T) {
	f, err := CustomFormat(`^(\w+) (\d+) "(.*)"`, true)
	if err != nil {
		t.Fatalf("CustomFormat: %v", err)
	}
	got := ParseBuffers([]string{`buf7 12 "hello world"`}, f)
	want := []model.Buffer{{ID: "buf7", Size: 12, Sample: "hello world"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBuffers(custom) = %v, want %v", got, want)
	}

	if _, err := CustomFormat(`([`, false); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
