// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of items to keep visible above/below the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead (border + header + separator).
	// Used to calculate available list height: listHeight = panelHeight - PanelOverhead
	PanelOverhead = BorderHeight + HeaderHeight

	// QueueWidthDivisor determines the width of the queue panel.
	// The queue gets 1/QueueWidthDivisor of the width.
	QueueWidthDivisor = 3

	// NarrowThreshold is the terminal width below which the queue panel is
	// stacked under the main view instead of beside it.
	NarrowThreshold = 100

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5

	// PlayerBarHeight is the player bar height including its border.
	PlayerBarHeight = 4

	// SearchBarHeight is the search input height including its border.
	SearchBarHeight = 3

	// VisualizerHeight is the number of rows used by the spectrum bars.
	VisualizerHeight = 5
)
