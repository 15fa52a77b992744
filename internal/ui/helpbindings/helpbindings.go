// Package helpbindings provides a scrollable overlay listing the key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextPlayback,
	keymap.ContextList,
	keymap.ContextTracks,
	keymap.ContextQueue,
	keymap.ContextLyrics,
}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	keymap.ContextGlobal:   "Global",
	keymap.ContextPlayback: "Playback",
	keymap.ContextList:     "Lists",
	keymap.ContextTracks:   "Tracks",
	keymap.ContextQueue:    "Queue Panel",
	keymap.ContextLyrics:   "Lyrics",
}

// chrome is the number of lines taken by the border, title and footer.
const chrome = 6

// Model holds the state for the help overlay.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help overlay showing every context.
func New() Model {
	m := Model{}
	m.SetContexts(categoryOrder)
	return m
}

// SetContexts sets which binding contexts to display.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

// Update handles scrolling and closing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View renders the bordered help box.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := m.lines()

	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := slices.Clone(lines[start:end])
	for i, line := range visible {
		if w := lipgloss.Width(line); w < maxWidth {
			visible[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	s := styles.T().S()
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Help"))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(visible, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(s.Subtle.Render(m.footer()))

	return styles.PanelStyle(true).Padding(0, 1).Render(sb.String())
}

func (m Model) lines() []string {
	s := styles.T().S()

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(keyList(b)))
	}

	var lines []string
	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines,
				s.Header.Render(label),
				s.Subtle.Render(strings.Repeat("─", keyWidth+15)),
			)
			current = b.Context
		}

		keys := keyList(b)
		padded := keys + strings.Repeat(" ", keyWidth-lipgloss.Width(keys))
		lines = append(lines, s.Key.Render(padded)+"  "+s.Base.Render(b.Description))
	}
	return lines
}

func keyList(b keymap.Binding) string {
	names := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		names[i] = keymap.KeyName(k)
	}
	return strings.Join(names, ", ")
}

func (m Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	return max(m.Height()-chrome, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines())-m.visibleHeight(), 0)
}
