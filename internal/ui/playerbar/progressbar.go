package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// renderProgress renders "1:23 ━━━━━━━──────── 3:58".
// Without a known duration only the position is shown.
func renderProgress(s State, width int) string {
	st := styles.T().S()

	posStr := playlist.FormatDuration(s.Position)
	if s.Duration <= 0 {
		return st.Muted.Render(posStr)
	}
	durStr := playlist.FormatDuration(s.Duration)

	fixedWidth := lipgloss.Width(posStr) + 1 + 1 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < ui.MinProgressBarWidth {
		return st.Muted.Render(posStr + " / " + durStr)
	}

	filled := filledCells(s.Position, s.Duration, barWidth)
	bar := st.Playing.Render(strings.Repeat(filledBlock, filled)) +
		st.Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return st.Muted.Render(posStr) + " " + bar + " " + st.Muted.Render(durStr)
}

func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || position <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(int(float64(width)*ratio), width)
}
