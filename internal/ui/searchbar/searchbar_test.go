package searchbar

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/ui/action"
	"github.com/llehouerou/ytplay/internal/ui/testutil"
)

func focused() Model {
	m := New()
	m.SetSize(60, 3)
	_ = m.Focus()
	return m
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(testutil.Key(s))
	return m
}

func actionOf(t *testing.T, cmd tea.Cmd) action.Action {
	t.Helper()
	msg, ok := testutil.Exec(cmd).(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", testutil.Exec(cmd))
	}
	if msg.Source != Source {
		t.Errorf("Source = %q, want %q", msg.Source, Source)
	}
	return msg.Action
}

func TestSubmitTrimsQuery(t *testing.T) {
	m := typeText(focused(), "  daft punk ")
	if got := m.Value(); got != "  daft punk " {
		t.Fatalf("Value() = %q", got)
	}

	_, cmd := m.Update(testutil.Key("enter"))
	submit, ok := actionOf(t, cmd).(Submit)
	if !ok {
		t.Fatal("enter should submit")
	}
	if submit.Query != "daft punk" {
		t.Errorf("Query = %q, want %q", submit.Query, "daft punk")
	}
}

func TestSubmitIgnoresBlankQuery(t *testing.T) {
	m := typeText(focused(), "   ")
	if _, cmd := m.Update(testutil.Key("enter")); cmd != nil {
		t.Error("blank query should not submit")
	}
}

func TestEscCancels(t *testing.T) {
	_, cmd := focused().Update(testutil.Key("esc"))
	if _, ok := actionOf(t, cmd).(Cancel); !ok {
		t.Error("esc should cancel")
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := New()
	m.SetSize(60, 3)
	m = typeText(m, "abc")
	if m.Value() != "" {
		t.Errorf("Value() = %q, want empty", m.Value())
	}
	if _, cmd := m.Update(testutil.Key("enter")); cmd != nil {
		t.Error("unfocused bar should not submit")
	}
}

func TestBlurKeepsText(t *testing.T) {
	m := typeText(focused(), "jazz")
	m.Blur()
	if m.IsFocused() {
		t.Error("Blur should clear focus")
	}
	if m.Value() != "jazz" {
		t.Errorf("Value() = %q, want jazz", m.Value())
	}
}

func TestView(t *testing.T) {
	if New().View() != "" {
		t.Error("unsized bar should render nothing")
	}

	m := focused()
	view := testutil.StripANSI(m.View())
	if !strings.Contains(view, "Search songs") {
		t.Errorf("placeholder missing:\n%s", view)
	}
	for _, line := range testutil.SplitLines(m.View()) {
		if w := testutil.MeasureWidth(line); w > 60 {
			t.Errorf("line width %d exceeds 60", w)
		}
	}
}
