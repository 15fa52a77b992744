package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/ui/action"
	"github.com/llehouerou/ytplay/internal/ui/testutil"
)

func newTestHelp(contexts ...string) Model {
	m := New()
	if len(contexts) > 0 {
		m.SetContexts(contexts)
	}
	m.SetSize(80, 24)
	return m
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"esc", "q", "?"} {
		t.Run(key, func(t *testing.T) {
			m := newTestHelp()
			_, cmd := m.Update(testutil.Key(key))
			msg, ok := testutil.Exec(cmd).(action.Msg)
			if !ok {
				t.Fatalf("expected action.Msg, got %T", testutil.Exec(cmd))
			}
			if msg.Source != Source {
				t.Errorf("Source = %q, want %q", msg.Source, Source)
			}
			if _, ok := msg.Action.(Close); !ok {
				t.Errorf("expected Close, got %T", msg.Action)
			}
		})
	}
}

func TestHelpBindings_Scroll(t *testing.T) {
	m := newTestHelp()

	m, _ = m.Update(testutil.Key("j"))
	m, _ = m.Update(testutil.Key("down"))
	if m.scrollOffset != 2 {
		t.Fatalf("scrollOffset = %d, want 2", m.scrollOffset)
	}

	m, _ = m.Update(testutil.Key("k"))
	if m.scrollOffset != 1 {
		t.Errorf("scrollOffset = %d, want 1", m.scrollOffset)
	}

	for range 5 {
		m, _ = m.Update(testutil.Key("up"))
	}
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d, want 0", m.scrollOffset)
	}
}

func TestHelpBindings_ScrollStopsAtEnd(t *testing.T) {
	m := newTestHelp()
	for range 200 {
		m, _ = m.Update(testutil.Key("j"))
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want %d", m.scrollOffset, m.maxScroll())
	}
	if m.maxScroll() == 0 {
		t.Error("expected every context to overflow a 24 line window")
	}
}

func TestHelpBindings_NoScrollWhenContentFits(t *testing.T) {
	m := newTestHelp(keymap.ContextLyrics)
	m, _ = m.Update(testutil.Key("j"))
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d, want 0", m.scrollOffset)
	}

	view := testutil.StripANSI(m.View())
	if !strings.Contains(view, "?/esc close") || strings.Contains(view, "j/k scroll") {
		t.Errorf("unexpected footer in view:\n%s", view)
	}
}

func TestHelpBindings_View(t *testing.T) {
	m := newTestHelp(keymap.ContextGlobal, keymap.ContextPlayback)
	view := testutil.StripANSI(m.View())

	for _, want := range []string{"Help", "Global", "Playback", "Quit", "space", "Play/pause"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Queue Panel") {
		t.Error("view should only show the requested contexts")
	}

	line := testutil.FindLine(view, "Quit")
	if !strings.Contains(line, "q, ctrl+c") {
		t.Errorf("quit line = %q, want keys joined with comma", line)
	}
}

func TestHelpBindings_ContextOrder(t *testing.T) {
	m := newTestHelp(keymap.ContextQueue, keymap.ContextGlobal)
	view := testutil.StripANSI(m.View())

	global := strings.Index(view, "Global")
	queue := strings.Index(view, "Queue Panel")
	if global < 0 || queue < 0 || global > queue {
		t.Errorf("Global (%d) should come before Queue Panel (%d)", global, queue)
	}
}

func TestHelpBindings_ZeroSize(t *testing.T) {
	m := New()
	if got := m.View(); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
}
