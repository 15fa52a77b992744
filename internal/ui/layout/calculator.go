// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/llehouerou/ytplay/internal/ui"

// ContentOpts contains the heights of the fixed rows around the content area.
type ContentOpts struct {
	HeaderHeight     int
	SearchBarHeight  int // 0 when the search bar is hidden
	VisualizerHeight int // 0 when the visualizer is off or idle
	PlayerBarHeight  int
}

// ContentHeight calculates the available height for the main view and the
// queue panel. It is never negative.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.SearchBarHeight
	height -= opts.VisualizerHeight
	height -= opts.PlayerBarHeight
	return max(height, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < ui.NarrowThreshold
}

// MainHeight calculates the height of the main view.
// In narrow mode the main view gets 2/3 of the content height.
func MainHeight(contentHeight int, narrowMode bool) int {
	if narrowMode {
		return contentHeight * 2 / 3
	}
	return contentHeight
}

// QueueHeight calculates the height of the queue panel.
// In narrow mode it takes what is left below the main view.
func QueueHeight(contentHeight int, narrowMode bool) int {
	if narrowMode {
		return contentHeight - MainHeight(contentHeight, narrowMode)
	}
	return contentHeight
}

// QueueWidth calculates the width of the queue panel.
func QueueWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth / ui.QueueWidthDivisor
}

// MainWidth calculates the width of the main view.
func MainWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth - QueueWidth(windowWidth, narrowMode)
}
