package app

import (
	"strings"

	"github.com/llehouerou/ytplay/internal/ui/headerbar"
	"github.com/llehouerou/ytplay/internal/ui/layout"
	"github.com/llehouerou/ytplay/internal/ui/overlay"
	"github.com/llehouerou/ytplay/internal/ui/playerbar"
	"github.com/llehouerou/ytplay/internal/ui/render"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	parts := []string{m.renderHeader()}
	if m.searchVisible() {
		parts = append(parts, m.Search.View())
	}

	mainView := m.Lyrics.View()
	if l := m.mainList(); l != nil {
		mainView = l.View()
	}
	sideView := m.sideList().View()
	if layout.IsNarrowMode(m.Width) {
		parts = append(parts, mainView, sideView)
	} else {
		parts = append(parts, joinColumnsView(mainView, sideView))
	}

	if m.visualizerVisible() {
		parts = append(parts, m.Spectrum.View())
	}
	parts = append(parts, m.renderPlayerBar())

	view := strings.Join(parts, "\n")
	if m.ShowHelp {
		view = overlay.Center(view, m.Help.View(), m.Width, m.Height)
	}
	if m.Confirm.Active() {
		view = overlay.Center(view, m.Confirm.View(), m.Width, m.Height)
	}
	return view
}

// renderHeader shows the tabs, or the last error until the next key press.
func (m Model) renderHeader() string {
	if m.ErrorMsg != "" {
		return styles.T().S().Error.Render(render.TruncateAndPad(m.ErrorMsg, m.Width))
	}
	return headerbar.Render(m.ViewMode, m.Width)
}

func (m Model) renderPlayerBar() string {
	s := playerbar.NewState(m.state, m.position, m.status)
	s.Remote = m.remote
	return playerbar.Render(s, m.Width)
}

// joinColumnsView places two multi-line blocks side by side.
func joinColumnsView(left, right string) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	lineCount := max(len(leftLines), len(rightLines))

	var sb strings.Builder
	for i := range lineCount {
		if i < len(leftLines) {
			sb.WriteString(leftLines[i])
		}
		if i < len(rightLines) {
			sb.WriteString(rightLines[i])
		}
		if i < lineCount-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
