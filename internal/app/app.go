package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/ytplay/internal/catalog"
	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/render"
	"github.com/llehouerou/ytplay/internal/ui/confirm"
	"github.com/llehouerou/ytplay/internal/ui/headerbar"
	"github.com/llehouerou/ytplay/internal/ui/helpbindings"
	lyricsui "github.com/llehouerou/ytplay/internal/ui/lyrics"
	"github.com/llehouerou/ytplay/internal/ui/searchbar"
	"github.com/llehouerou/ytplay/internal/ui/spectrum"
	"github.com/llehouerou/ytplay/internal/ui/tracklist"
)

// Action sources of the track lists.
const (
	SourceFeatured = "featured"
	SourceResults  = "results"
	SourceQueue    = "queue"
	SourceHistory  = "history"
)

// VolumeStep is the volume change per key press.
const VolumeStep = 0.05

// FocusTarget is the component receiving keys.
type FocusTarget int

const (
	// FocusMain is the featured list, the search results or the lyrics.
	FocusMain FocusTarget = iota
	// FocusQueue is the queue or history panel.
	FocusQueue
	// FocusSearch is the search input.
	FocusSearch
)

// Engine is the part of the audio engine the UI observes.
type Engine interface {
	Events() <-chan render.Event
	Position() (time.Duration, bool)
}

// Deps holds the services the UI drives.
type Deps struct {
	Context   context.Context // cancels catalog requests; defaults to Background
	Transport playback.Transport
	Catalog   catalog.Client
	Lyrics    lyricsui.Fetcher    // nil disables lookups
	Engine    Engine              // nil without audio output
	Frames    <-chan render.Frame // nil without visualizer
	Remote    bool                // remote control server is running
}

// Model is the root application model.
type Model struct {
	ctx       context.Context
	transport playback.Transport
	catalog   catalog.Client
	engine    Engine
	frames    <-chan render.Frame
	sub       *playback.Subscription
	remote    bool
	keys      *keymap.Resolver

	ViewMode    headerbar.View
	prevView    headerbar.View
	Focus       FocusTarget
	prevFocus   FocusTarget
	ShowHistory bool
	ShowHelp    bool

	Search   searchbar.Model
	Featured tracklist.Model
	Results  tracklist.Model
	Queue    tracklist.Model
	History  tracklist.Model
	Lyrics   *lyricsui.Model
	Spectrum spectrum.Model
	Help     helpbindings.Model
	Confirm  confirm.Model

	state    playback.PlaybackState
	position time.Duration
	status   string
	query    string
	ticking  bool
	playedAt map[string]time.Time // history track ID -> when it stopped being current
	sections map[string]string    // featured track ID -> section title

	ErrorMsg string
	Width    int
	Height   int
}

// syncMsg asks the model to read the transport state without re-arming
// the service watcher.
type syncMsg struct{}

// New creates the root model. It subscribes to the transport; call Close
// when the program exits.
func New(deps Deps) Model {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:       ctx,
		transport: deps.Transport,
		catalog:   deps.Catalog,
		engine:    deps.Engine,
		frames:    deps.Frames,
		sub:       deps.Transport.Watch(),
		remote:    deps.Remote,
		keys:      keymap.ForContexts(keymap.ContextGlobal, keymap.ContextPlayback),
		ViewMode:  headerbar.ViewHome,
		prevView:  headerbar.ViewHome,
		Search:    searchbar.New(),
		Lyrics:    lyricsui.New(deps.Lyrics),
		Spectrum:  spectrum.New(),
		Help:      helpbindings.New(),
		Confirm:   confirm.New(),
		playedAt:  make(map[string]time.Time),
		sections:  make(map[string]string),
	}

	trackKeys := keymap.ForContexts(keymap.ContextList, keymap.ContextTracks)

	m.Featured = tracklist.New(SourceFeatured, trackKeys)
	m.Featured.SetTitle("Featured")
	m.Featured.SetEmptyText("Loading featured tracks...")
	sections := m.sections
	m.Featured.SetAnnotator(func(_ int, t playlist.Track) string {
		return sections[t.ID]
	})

	m.Results = tracklist.New(SourceResults, trackKeys)
	m.Results.SetTitle("Results")
	m.Results.SetEmptyText("Press / to search")

	m.Queue = tracklist.New(SourceQueue, keymap.ForContexts(keymap.ContextList, keymap.ContextQueue))
	m.Queue.SetTitle("Queue")
	m.Queue.SetEmptyText("Queue is empty")

	m.History = tracklist.New(SourceHistory, trackKeys)
	m.History.SetTitle("History")
	m.History.SetEmptyText("Nothing played yet")
	playedAt := m.playedAt
	m.History.SetAnnotator(func(_ int, t playlist.Track) string {
		if at, ok := playedAt[t.ID]; ok {
			return humanize.Time(at)
		}
		return t.Duration
	})

	m.applyFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return syncMsg{} },
		WatchServiceEvents(m.sub),
		m.watchEngine(),
		WatchFrames(m.frames),
		LoadFeaturedCmd(m.ctx, m.catalog),
	)
}

// Close releases the transport subscription.
func (m Model) Close() {
	if m.sub != nil {
		m.sub.Close()
	}
}

// State returns the last playback state the model has seen.
func (m Model) State() playback.PlaybackState {
	return m.state
}

// Status returns the audio status shown in the player bar.
func (m Model) Status() string {
	return m.status
}

// Position returns the playback position shown in the player bar.
func (m Model) Position() time.Duration {
	return m.position
}

func (m Model) watchEngine() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	return WatchEngine(m.engine.Events())
}

// searchVisible reports whether the search bar takes a row.
func (m Model) searchVisible() bool {
	return m.Focus == FocusSearch || m.ViewMode == headerbar.ViewSearch
}

// visualizerVisible reports whether the spectrum takes a row.
func (m Model) visualizerVisible() bool {
	return m.frames != nil && m.state.CurrentTrack != nil
}

// mainList returns the list shown in the main area, or nil for lyrics.
func (m *Model) mainList() *tracklist.Model {
	switch m.ViewMode {
	case headerbar.ViewHome:
		return &m.Featured
	case headerbar.ViewSearch:
		return &m.Results
	default:
		return nil
	}
}

// sideList returns the list shown in the side panel.
func (m *Model) sideList() *tracklist.Model {
	if m.ShowHistory {
		return &m.History
	}
	return &m.Queue
}

// setFocus moves keyboard focus, remembering where it came from.
func (m *Model) setFocus(target FocusTarget) {
	if target != m.Focus {
		m.prevFocus = m.Focus
	}
	m.Focus = target
	m.applyFocus()
}

func (m *Model) applyFocus() {
	onMain := m.Focus == FocusMain
	m.Featured.SetFocused(onMain && m.ViewMode == headerbar.ViewHome)
	m.Results.SetFocused(onMain && m.ViewMode == headerbar.ViewSearch)
	m.Lyrics.SetFocused(onMain && m.ViewMode == headerbar.ViewLyrics)
	m.Queue.SetFocused(m.Focus == FocusQueue && !m.ShowHistory)
	m.History.SetFocused(m.Focus == FocusQueue && m.ShowHistory)
}

// setView switches the main area.
func (m *Model) setView(v headerbar.View) {
	if v != m.ViewMode {
		m.prevView = m.ViewMode
	}
	m.ViewMode = v
	m.applyFocus()
}
