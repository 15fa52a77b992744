// Package lyrics provides the synchronized lyrics panel.
package lyrics

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/lyrics"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/render"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

// DefaultTimeout bounds one lyrics lookup.
const DefaultTimeout = 10 * time.Second

// State represents the current state of the lyrics panel.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateNotFound
	StateError
)

// Fetcher looks lyrics up for a track.
type Fetcher interface {
	Fetch(ctx context.Context, track lyrics.TrackInfo) lyrics.FetchResult
}

// Model holds the state for the lyrics panel.
type Model struct {
	ui.Base
	source       Fetcher
	keys         *keymap.Resolver
	lyrics       *lyrics.Lyrics
	state        State
	errorMsg     string
	currentLine  int
	scrollOffset int
	autoScroll   bool

	trackID  string
	title    string
	artist   string
	duration time.Duration
	position time.Duration
}

// New creates a lyrics panel backed by source.
func New(source Fetcher) *Model {
	return &Model{
		source:      source,
		keys:        keymap.ForContexts(keymap.ContextList, keymap.ContextLyrics),
		currentLine: -1,
		autoScroll:  true,
	}
}

// State returns the panel state.
func (m *Model) State() State {
	return m.state
}

// TrackID returns the ID of the track the panel shows.
func (m *Model) TrackID() string {
	return m.trackID
}

// SetTrack switches the panel to t and starts a lookup. Setting the track
// already shown does nothing; nil clears the panel.
func (m *Model) SetTrack(t *playlist.Track) tea.Cmd {
	if t == nil {
		m.reset("")
		m.state = StateIdle
		return nil
	}
	if t.ID == m.trackID {
		return nil
	}

	m.reset(t.ID)
	m.title = t.Title
	m.artist = t.Artist
	if d, ok := playlist.ParseDuration(t.Duration); ok {
		m.duration = d
	}
	m.state = StateLoading
	return m.fetchLyricsCmd()
}

func (m *Model) reset(trackID string) {
	m.trackID = trackID
	m.title, m.artist = "", ""
	m.duration, m.position = 0, 0
	m.lyrics = nil
	m.errorMsg = ""
	m.currentLine = -1
	m.scrollOffset = 0
	m.autoScroll = true
}

// SetPosition updates the current playback position.
func (m *Model) SetPosition(pos time.Duration) {
	m.position = pos
	if m.lyrics == nil {
		return
	}
	if line := m.lyrics.LineAt(pos); line != m.currentLine {
		m.currentLine = line
		if m.autoScroll {
			m.centerCurrentLine()
		}
	}
}

// CurrentLine returns the index of the highlighted line, or -1.
func (m *Model) CurrentLine() int {
	return m.currentLine
}

// centerCurrentLine adjusts scroll to center the current line.
func (m *Model) centerCurrentLine() {
	if m.currentLine < 0 || m.lyrics == nil {
		return
	}
	m.scrollOffset = m.currentLine - m.visibleHeight()/2
	m.scrollOffset = max(0, min(m.scrollOffset, m.maxScroll()))
}

// Update handles fetch results, and key presses while focused.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.IsFocused() {
			m.handleKey(msg)
		}
	case FetchedMsg:
		m.handleFetched(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionMoveDown:
		m.autoScroll = false
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case keymap.ActionMoveUp:
		m.autoScroll = false
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	case keymap.ActionJumpStart:
		m.autoScroll = false
		m.scrollOffset = 0
	case keymap.ActionJumpEnd:
		m.autoScroll = false
		m.scrollOffset = m.maxScroll()
	case keymap.ActionFollowLyrics:
		m.autoScroll = true
		m.centerCurrentLine()
	}
}

func (m *Model) handleFetched(msg FetchedMsg) {
	// Ignore stale results from a previous track
	if msg.TrackID != m.trackID || m.state != StateLoading {
		return
	}
	switch {
	case msg.Result.Err != nil:
		m.state = StateError
		m.errorMsg = msg.Result.Err.Error()
	case msg.Result.Lyrics == nil:
		m.state = StateNotFound
	default:
		m.lyrics = msg.Result.Lyrics
		m.state = StateLoaded
		m.currentLine = m.lyrics.LineAt(m.position)
		m.centerCurrentLine()
	}
}

// View renders the panel.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	s := styles.T().S()
	innerWidth := m.InnerWidth()

	title := "Lyrics"
	if m.title != "" {
		title += " · " + m.title
	}
	header := s.Header.Render(render.TruncateAndPad(title, innerWidth))
	separator := s.Subtle.Render(render.Separator(innerWidth))

	height := m.visibleHeight()
	var body []string
	switch m.state {
	case StateIdle:
		body = m.message(height, s.Subtle.Render(render.Center("Nothing playing", innerWidth)))
	case StateLoading:
		body = m.message(height, s.Subtle.Render(render.Center("Loading lyrics...", innerWidth)))
	case StateNotFound:
		body = m.message(height, s.Subtle.Render(render.Center("No lyrics found", innerWidth)))
	case StateError:
		body = m.message(height,
			s.Error.Render(render.Center("Error loading lyrics", innerWidth)),
			s.Subtle.Render(render.Center(m.errorMsg, innerWidth)))
	case StateLoaded:
		body = m.renderLines(innerWidth, height)
	}
	for len(body) < height {
		body = append(body, render.EmptyLine(innerWidth))
	}

	footer := s.Subtle.Render(render.TruncateAndPad(m.buildFooter(), innerWidth))
	content := header + "\n" + separator + "\n" + strings.Join(body, "\n") + "\n" + footer

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// message renders lines vertically centered in the body.
func (m *Model) message(height int, lines ...string) []string {
	body := make([]string, 0, height)
	for range max((height-len(lines))/2, 0) {
		body = append(body, "")
	}
	return append(body, lines...)
}

func (m *Model) renderLines(width, height int) []string {
	s := styles.T().S()
	if m.lyrics == nil || len(m.lyrics.Lines) == 0 {
		return m.message(height, s.Subtle.Render(render.Center("No lyrics found", width)))
	}

	start := min(m.scrollOffset, len(m.lyrics.Lines))
	end := min(start+height, len(m.lyrics.Lines))
	body := make([]string, 0, height)
	for i := start; i < end; i++ {
		text := render.Center(m.lyrics.Lines[i].Text, width)
		if i == m.currentLine {
			body = append(body, s.Playing.Render(text))
		} else {
			body = append(body, s.Muted.Render(text))
		}
	}
	return body
}

func (m *Model) buildFooter() string {
	var parts []string

	if m.duration > 0 {
		parts = append(parts, playlist.FormatDuration(m.position)+" / "+playlist.FormatDuration(m.duration))
	}

	if m.state == StateLoaded && m.lyrics != nil {
		switch {
		case !m.lyrics.IsSynced():
			parts = append(parts, "unsynced")
		case m.autoScroll:
			parts = append(parts, "synced")
		default:
			parts = append(parts, m.keys.Hint(keymap.ActionFollowLyrics)+" follow")
		}
	}

	return strings.Join(parts, " · ")
}

// visibleHeight is the number of lyric rows: the panel minus border,
// header, separator and footer.
func (m *Model) visibleHeight() int {
	return max(m.ListHeight()-1, 1)
}

func (m *Model) maxScroll() int {
	if m.lyrics == nil {
		return 0
	}
	return max(len(m.lyrics.Lines)-m.visibleHeight(), 0)
}

func (m *Model) fetchLyricsCmd() tea.Cmd {
	if m.source == nil {
		m.state = StateNotFound
		return nil
	}
	source := m.source
	trackID := m.trackID
	info := lyrics.TrackInfo{
		Artist:   m.artist,
		Title:    m.title,
		Duration: m.duration,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
		return FetchedMsg{TrackID: trackID, Result: source.Fetch(ctx, info)}
	}
}
