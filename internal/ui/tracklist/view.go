package tracklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/ui/render"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

const (
	playingSymbol = "\u25B6" // ▶
	prefixWidth   = 2
	maxNoteWidth  = 16
)

// View renders the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.InnerWidth()
	listHeight := m.ListHeight()

	header := styles.T().S().Header.Render(
		render.TruncateAndPad(fmt.Sprintf("%s (%d)", m.title, len(m.tracks)), innerWidth))
	separator := styles.T().S().Subtle.Render(render.Separator(innerWidth))

	content := header + "\n" + separator + "\n" + m.renderRows(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) renderRows(width, height int) string {
	lines := make([]string, 0, height)

	if len(m.tracks) == 0 && m.empty != "" && height > 0 {
		lines = append(lines, styles.T().S().Muted.Render(render.TruncateAndPad(m.empty, width)))
	}

	start, end := m.cursor.visibleRange(len(m.tracks), height)
	noteWidth := m.noteWidth(start, end)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, m.tracks[i], width, noteWidth))
	}

	for len(lines) < height {
		lines = append(lines, render.EmptyLine(width))
	}
	return strings.Join(lines, "\n")
}

// noteWidth sizes the right-hand column to the widest visible annotation.
func (m Model) noteWidth(start, end int) int {
	if m.annotate == nil {
		return 0
	}
	w := 0
	for i := start; i < end; i++ {
		w = max(w, lipgloss.Width(m.annotate(i, m.tracks[i])))
	}
	return min(w, maxNoteWidth)
}

// renderRow renders "▶ Title      Artist     3:45".
func (m Model) renderRow(idx int, t playlist.Track, width, noteWidth int) string {
	prefix := "  "
	if m.playing != "" && t.ID == m.playing {
		prefix = playingSymbol + " "
	}

	contentWidth := width - prefixWidth
	note := ""
	if noteWidth > 0 {
		contentWidth -= noteWidth + 1
		note = " " + render.TruncateAndPad(m.annotate(idx, t), noteWidth)
	}
	contentWidth = max(contentWidth, 0)

	titleWidth := contentWidth * 3 / 5
	artistWidth := contentWidth - titleWidth
	title := render.TruncateAndPad(t.Title, titleWidth)
	artist := render.TruncateAndPad(t.Artist, artistWidth)

	return m.rowStyle(idx, t).Render(prefix + title + artist + note)
}

func (m Model) rowStyle(idx int, t playlist.Track) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor.pos && m.IsFocused()
	isPlaying := m.playing != "" && t.ID == m.playing

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	default:
		return s.Base
	}
}
