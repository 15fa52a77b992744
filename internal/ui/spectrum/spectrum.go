// Package spectrum draws frequency bins as vertical bars.
package spectrum

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

// Decay is how much of a bar's previous height survives each frame.
const Decay = 0.75

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Model holds the bar heights between frames.
type Model struct {
	ui.Base
	levels []float64 // per bin, 0..1
}

// New creates an empty spectrum.
func New() Model {
	return Model{}
}

// SetBins feeds one frame of bins (0..255 each).
func (m *Model) SetBins(bins []uint8) {
	if len(m.levels) != len(bins) {
		m.levels = make([]float64, len(bins))
	}
	for i, b := range bins {
		v := float64(b) / 255
		m.levels[i] = max(v, m.levels[i]*Decay)
	}
}

// Clear drops all bars to zero.
func (m *Model) Clear() {
	clear(m.levels)
}

// Active reports whether any bar is visible.
func (m Model) Active() bool {
	for _, l := range m.levels {
		if l*8 >= 1 {
			return true
		}
	}
	return false
}

// View renders the bars over the full size, bottom-aligned.
func (m Model) View() string {
	width, height := m.Width(), m.Height()
	if width <= 0 || height <= 0 {
		return ""
	}

	columns := m.columns(width)
	colors := styles.Blend(height, styles.T().SpectrumHigh, styles.T().SpectrumLow)

	rows := make([]string, height)
	for r := range height {
		// Eighths of a cell below this row.
		floor := (height - 1 - r) * 8
		var b strings.Builder
		for _, c := range columns {
			eighths := int(c*float64(height*8) + 0.5)
			b.WriteRune(blocks[min(max(eighths-floor, 0), 8)])
		}
		rows[r] = lipgloss.NewStyle().Foreground(colors[r]).Render(b.String())
	}
	return strings.Join(rows, "\n")
}

// columns resamples the bins to width columns, taking the loudest bin
// that falls in each column.
func (m Model) columns(width int) []float64 {
	cols := make([]float64, width)
	n := len(m.levels)
	if n == 0 {
		return cols
	}
	for c := range cols {
		start := c * n / width
		end := max((c+1)*n/width, start+1)
		for _, l := range m.levels[start:min(end, n)] {
			cols[c] = max(cols[c], l)
		}
	}
	return cols
}
