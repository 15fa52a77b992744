package app

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/errmsg"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/render"
	"github.com/llehouerou/ytplay/internal/ui/action"
	"github.com/llehouerou/ytplay/internal/ui/confirm"
	"github.com/llehouerou/ytplay/internal/ui/headerbar"
	"github.com/llehouerou/ytplay/internal/ui/helpbindings"
	lyricsui "github.com/llehouerou/ytplay/internal/ui/lyrics"
	"github.com/llehouerou/ytplay/internal/ui/searchbar"
	"github.com/llehouerou/ytplay/internal/ui/tracklist"
)

var errNoStream = errors.New("no stream available")

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.resize()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case action.Msg:
		return m.handleAction(msg)

	case lyricsui.FetchedMsg:
		return m.Lyrics.Update(msg)

	case syncMsg:
		return m.sync()

	case PlaybackMessage:
		return m.handlePlaybackMessage(msg)

	case CatalogMessage:
		m.handleCatalogMessage(msg)
		return nil
	}
	return nil
}

func (m *Model) handlePlaybackMessage(msg PlaybackMessage) tea.Cmd {
	switch msg := msg.(type) {
	case ServiceChangedMsg:
		return tea.Batch(m.sync(), WatchServiceEvents(m.sub))

	case ServiceClosedMsg:
		zlog.Debug().Msg("playback subscription closed")

	case TickMsg:
		return m.handleTick()

	case EngineEventMsg:
		m.handleEngineEvent(msg.Event)
		return m.watchEngine()

	case FrameMsg:
		if msg.Frame.TrackID != "" && msg.Frame.TrackID == m.state.CurrentID() {
			m.Spectrum.SetBins(msg.Frame.Bins[:])
		}
		return WatchFrames(m.frames)
	}
	return nil
}

func (m *Model) handleCatalogMessage(msg CatalogMessage) {
	switch msg := msg.(type) {
	case FeaturedLoadedMsg:
		clear(m.sections)
		var tracks []playlist.Track
		for _, s := range msg.Sections {
			for _, t := range s.Tracks {
				if _, seen := m.sections[t.ID]; seen || t.ID == "" {
					continue
				}
				m.sections[t.ID] = s.Title
				tracks = append(tracks, t)
			}
		}
		m.Featured.SetTracks(tracks)
		m.Featured.SetEmptyText("Nothing to show. Press / to search")
		zlog.Debug().Int("sections", len(msg.Sections)).Int("tracks", len(tracks)).Msg("featured loaded")

	case SearchResultMsg:
		if msg.Query != m.query {
			return
		}
		m.Results.SetTracks(msg.Tracks)
		m.Results.ResetCursor()
		m.Results.SetEmptyText(`No results for "` + msg.Query + `"`)
		zlog.Debug().Str("query", msg.Query).Int("results", len(msg.Tracks)).Msg("search done")
	}
}

// sync reads the transport snapshot into every component.
func (m *Model) sync() tea.Cmd {
	st := m.transport.Snapshot()
	prevID := m.state.CurrentID()
	m.state = st

	currentID := st.CurrentID()
	if currentID != prevID {
		if prevID != "" && slices.ContainsFunc(st.History, func(t playlist.Track) bool { return t.ID == prevID }) {
			m.playedAt[prevID] = time.Now()
		}
		m.position = 0
		m.status = ""
		m.Spectrum.Clear()
	}
	m.prunePlayedAt()

	m.Queue.SetTracks(st.Queue)
	m.History.SetTracks(st.History)
	m.Featured.SetPlaying(currentID)
	m.Results.SetPlaying(currentID)
	m.Queue.SetPlaying(currentID)
	m.History.SetPlaying(currentID)

	cmds := []tea.Cmd{m.Lyrics.SetTrack(st.CurrentTrack)}
	if st.IsPlaying && !m.ticking {
		m.ticking = true
		cmds = append(cmds, TickCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) prunePlayedAt() {
	for id := range m.playedAt {
		if !slices.ContainsFunc(m.state.History, func(t playlist.Track) bool { return t.ID == id }) {
			delete(m.playedAt, id)
		}
	}
}

func (m *Model) handleTick() tea.Cmd {
	if !m.state.IsPlaying {
		m.ticking = false
		return nil
	}
	pos, ok := time.Duration(0), false
	if m.engine != nil {
		pos, ok = m.engine.Position()
	}
	if ok {
		m.position = pos
	} else {
		m.position += TickInterval
	}
	m.Lyrics.SetPosition(m.position)
	return TickCmd()
}

func (m *Model) handleEngineEvent(ev render.Event) {
	log := zlog.Debug().Stringer("status", ev.Status)
	if ev.Track != nil {
		log = log.Str("track_id", ev.Track.ID)
	}
	log.Msg("engine event")

	if ev.Track != nil && ev.Track.ID != m.state.CurrentID() {
		return
	}

	switch ev.Status {
	case render.StatusLoading:
		m.status = "Loading"
	case render.StatusReady:
		m.status = ""
		m.position = 0
	case render.StatusUnavailable:
		m.status = "Unavailable"
		err := ev.Err
		if err == nil {
			err = errNoStream
		}
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpStreamResolve, trackTitle(ev.Track), err)
	case render.StatusFailed:
		m.status = "Failed"
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpPlaybackStart, trackTitle(ev.Track), ev.Err)
	case render.StatusIdle, render.StatusEnded:
		m.status = ""
	}
}

func trackTitle(t *playlist.Track) string {
	if t == nil {
		return ""
	}
	return t.Title
}

func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case tracklist.Activate:
		return m.handleTrackAction(msg.Source, a)

	case searchbar.Submit:
		m.Search.Blur()
		m.query = a.Query
		m.Results.SetTitle(`Results for "` + a.Query + `"`)
		m.Results.SetTracks(nil)
		m.Results.SetEmptyText("Searching...")
		m.setView(headerbar.ViewSearch)
		m.setFocus(FocusMain)
		return SearchCmd(m.ctx, m.catalog, a.Query)

	case searchbar.Cancel:
		m.Search.Blur()
		m.setFocus(m.prevFocus)

	case helpbindings.Close:
		m.ShowHelp = false

	case confirm.Result:
		return m.handleConfirm(a)
	}
	return nil
}
