package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"bold and color", "\x1b[1;38;5;196mtext\x1b[0m more", "text more"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMeasureWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"abc", 3},
		{"\x1b[31mabc\x1b[0m", 3},
		{"日本", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := MeasureWidth(tt.input); got != tt.want {
			t.Errorf("MeasureWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFindLine(t *testing.T) {
	output := "first\n\x1b[1msecond line\x1b[0m\nthird"

	if got := FindLine(output, "second"); got != "second line" {
		t.Errorf("FindLine() = %q, want %q", got, "second line")
	}
	if got := FindLine(output, "missing"); got != "" {
		t.Errorf("FindLine() = %q, want empty", got)
	}
	if !ContainsLine(output, "third") {
		t.Error("ContainsLine() = false, want true")
	}
	if ContainsLine(output, "fourth") {
		t.Error("ContainsLine() = true, want false")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\nb\n\n  \n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SplitLines() = %q, want [a b]", got)
	}
	if got := SplitLines(""); len(got) != 0 {
		t.Errorf("SplitLines(\"\") = %q, want empty", got)
	}
}

func TestKey(t *testing.T) {
	for _, k := range []string{"enter", "esc", "tab", "up", "shift+down", "ctrl+c", " ", "j", "G", "+"} {
		if got := Key(k).String(); got != k {
			t.Errorf("Key(%q).String() = %q", k, got)
		}
	}
}

type testMsg string

func TestExec(t *testing.T) {
	if Exec(nil) != nil {
		t.Error("Exec(nil) should be nil")
	}

	single := func() tea.Msg { return testMsg("one") }
	if got := Exec(single); got != testMsg("one") {
		t.Errorf("Exec(single) = %v", got)
	}

	batch := tea.Batch(nil, func() tea.Msg { return nil }, single)
	if got := Exec(batch); got != testMsg("one") {
		t.Errorf("Exec(batch) = %v", got)
	}
}
