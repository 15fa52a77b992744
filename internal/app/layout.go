package app

import (
	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/headerbar"
	"github.com/llehouerou/ytplay/internal/ui/layout"
)

// contentOpts returns the fixed rows around the content area.
func (m Model) contentOpts() layout.ContentOpts {
	opts := layout.ContentOpts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: ui.PlayerBarHeight,
	}
	if m.searchVisible() {
		opts.SearchBarHeight = ui.SearchBarHeight
	}
	if m.visualizerVisible() {
		opts.VisualizerHeight = ui.VisualizerHeight
	}
	return opts
}

// resize distributes the window between the components.
func (m *Model) resize() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	narrow := layout.IsNarrowMode(m.Width)
	content := layout.ContentHeight(m.Height, m.contentOpts())

	mainWidth, mainHeight := layout.MainWidth(m.Width, narrow), layout.MainHeight(content, narrow)
	m.Featured.SetSize(mainWidth, mainHeight)
	m.Results.SetSize(mainWidth, mainHeight)
	m.Lyrics.SetSize(mainWidth, mainHeight)

	queueWidth, queueHeight := layout.QueueWidth(m.Width, narrow), layout.QueueHeight(content, narrow)
	m.Queue.SetSize(queueWidth, queueHeight)
	m.History.SetSize(queueWidth, queueHeight)

	m.Search.SetSize(m.Width, ui.SearchBarHeight)
	m.Spectrum.SetSize(m.Width, ui.VisualizerHeight)
	m.Help.SetSize(m.Width, m.Height)
}
