// Package confirm provides a yes/no dialog drawn over the main view.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/ui/styles"
)

const hint = "enter/y confirm · esc/n cancel"

// Model is a yes/no confirmation dialog. The zero value is hidden.
type Model struct {
	title   string
	message string
	context any
	active  bool
}

// New creates a hidden dialog.
func New() Model {
	return Model{}
}

// Show opens the dialog. context comes back unchanged in the Result.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Active reports whether the dialog is shown.
func (m Model) Active() bool {
	return m.active
}

// Update answers the dialog. Other keys are swallowed while it is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}

	var confirmed bool
	switch keyMsg.String() {
	case "enter", "y", "Y":
		confirmed = true
	case "esc", "n", "N", "q":
		confirmed = false
	default:
		return m, nil
	}

	result := Result{Confirmed: confirmed, Context: m.context}
	m.active = false
	m.context = nil
	return m, func() tea.Msg { return ActionMsg(result) }
}

// View renders the bordered dialog, or "" when hidden.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	s := styles.T().S()
	content := s.Title.Render(m.title) + "\n\n" +
		s.Base.Render(m.message) + "\n\n" +
		s.Subtle.Render(hint)
	return styles.PanelStyle(true).Padding(0, 1).Render(content)
}
