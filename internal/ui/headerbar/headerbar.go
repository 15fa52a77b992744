// Package headerbar renders the one-line title and view tabs.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/ytplay/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Title is shown on the left of the bar.
const Title = "ytplay"

// View identifies the content of the main area.
type View string

// Main views.
const (
	ViewHome   View = "home"
	ViewSearch View = "search"
	ViewLyrics View = "lyrics"
)

type tab struct {
	key  string
	name string
	view View
}

var tabs = []tab{
	{"esc", "Home", ViewHome},
	{"/", "Search", ViewSearch},
	{"L", "Lyrics", ViewLyrics},
}

// Render returns the header bar for the given width. Tabs are centered and
// the title sits on the left when there is room for both.
func Render(current View, width int) string {
	if width < 20 {
		return ""
	}

	s := styles.T().S()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.view == current {
			parts = append(parts, s.Key.Render(t.key)+" "+s.Title.Render(t.name))
			continue
		}
		parts = append(parts, s.Subtle.Render(t.key)+" "+s.Muted.Render(t.name))
	}
	content := strings.Join(parts, s.Subtle.Render(" │ "))

	title := styles.ApplyBoldGradient(Title, styles.T().Primary, styles.T().Secondary)
	titleWidth := lipgloss.Width(title)
	contentWidth := lipgloss.Width(content)

	left := max((width-contentWidth)/2, 0)
	if left < titleWidth+2 {
		return ansi.Truncate(content, width, "…")
	}
	return title + strings.Repeat(" ", left-titleWidth) + content
}
