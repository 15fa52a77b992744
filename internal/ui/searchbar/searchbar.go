// Package searchbar provides the single-line search input.
package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ytplay/internal/icons"
	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/action"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

// Source is the action source name.
const Source = "search"

const charLimit = 200

// Submit is emitted when the user confirms a non-empty query.
type Submit struct {
	Query string
}

// ActionType implements action.Action.
func (a Submit) ActionType() string { return "searchbar.submit" }

// Cancel is emitted when the user leaves the input with esc.
type Cancel struct{}

// ActionType implements action.Action.
func (a Cancel) ActionType() string { return "searchbar.cancel" }

// Model is the search input.
type Model struct {
	ui.Base
	input textinput.Model
}

// New creates an unfocused search bar.
func New() Model {
	ti := textinput.New()
	ti.Prompt = icons.FormatSearch("")
	ti.Placeholder = "Search songs, artists..."
	ti.CharLimit = charLimit
	ti.PromptStyle = styles.T().S().Key
	ti.TextStyle = styles.T().S().Base
	ti.PlaceholderStyle = styles.T().S().Subtle
	return Model{input: ti}
}

// Focus starts editing and returns the cursor blink command.
func (m *Model) Focus() tea.Cmd {
	m.SetFocused(true)
	return m.input.Focus()
}

// Blur stops editing.
func (m *Model) Blur() {
	m.SetFocused(false)
	m.input.Blur()
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetSize sets the bar dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(m.InnerWidth()-lipgloss.Width(m.input.Prompt)-1, 1)
}

// Update handles keys while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.IsFocused() {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			return m, action.Cmd(Source, Submit{Query: query})
		case "esc":
			return m, action.Cmd(Source, Cancel{})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the bar.
func (m Model) View() string {
	if m.Width() == 0 {
		return ""
	}
	return styles.PanelStyle(m.IsFocused()).
		Width(m.InnerWidth()).
		Render(m.input.View())
}
