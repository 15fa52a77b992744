// Package app contains the root bubbletea model and its messages.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/catalog"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/render"
)

// Message category interfaces for type-based routing in Update().
// External messages (from other packages) cannot implement these interfaces,
// so they are handled separately in the Update() switch.

// PlaybackMessage is implemented by messages related to audio playback.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// CatalogMessage is implemented by messages carrying catalog results.
type CatalogMessage interface {
	tea.Msg
	catalogMessage()
}

// TickMsg is sent periodically while playing to refresh the position.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// ServiceChangedMsg is sent when the playback store reported a change.
type ServiceChangedMsg struct{}

func (ServiceChangedMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the playback subscription ends.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// EngineEventMsg wraps a status report from the audio engine.
type EngineEventMsg struct {
	Event render.Event
}

func (EngineEventMsg) playbackMessage() {}

// FrameMsg carries one visualizer frame.
type FrameMsg struct {
	Frame render.Frame
}

func (FrameMsg) playbackMessage() {}

// FeaturedLoadedMsg carries the sections for the home view.
type FeaturedLoadedMsg struct {
	Sections []catalog.Section
}

func (FeaturedLoadedMsg) catalogMessage() {}

// SearchResultMsg carries the tracks found for Query.
type SearchResultMsg struct {
	Query  string
	Tracks []playlist.Track
}

func (SearchResultMsg) catalogMessage() {}
