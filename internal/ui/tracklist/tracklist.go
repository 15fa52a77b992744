// Package tracklist renders a scrollable list of tracks inside a panel and
// turns key presses on it into actions for the app.
package tracklist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/ui"
	"github.com/llehouerou/ytplay/internal/ui/action"
)

// Annotator returns the right-hand column for a row, e.g. a duration.
type Annotator func(index int, t playlist.Track) string

// Model is a track list panel.
type Model struct {
	ui.Base
	name     string
	title    string
	empty    string
	tracks   []playlist.Track
	cursor   cursor
	keys     *keymap.Resolver
	playing  string
	annotate Annotator
}

// New creates a list that reports its actions as coming from name and
// resolves keys with keys.
func New(name string, keys *keymap.Resolver) Model {
	return Model{
		name:     name,
		title:    name,
		cursor:   newCursor(ui.ScrollMargin),
		keys:     keys,
		annotate: durationColumn,
	}
}

// Name returns the action source name.
func (m Model) Name() string {
	return m.name
}

// SetTitle sets the header text.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetEmptyText sets the text shown when the list has no tracks.
func (m *Model) SetEmptyText(text string) {
	m.empty = text
}

// SetAnnotator replaces the right-hand column. nil shows nothing.
func (m *Model) SetAnnotator(fn Annotator) {
	m.annotate = fn
}

// SetPlaying marks the track with the given ID as playing. "" clears it.
func (m *Model) SetPlaying(id string) {
	m.playing = id
}

// SetTracks replaces the rows, keeping the cursor inside the new list.
func (m *Model) SetTracks(tracks []playlist.Track) {
	m.tracks = tracks
	m.cursor.clampTo(len(m.tracks), m.ListHeight())
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.clampTo(len(m.tracks), m.ListHeight())
}

// ResetCursor moves the cursor back to the first row.
func (m *Model) ResetCursor() {
	m.cursor = newCursor(ui.ScrollMargin)
}

// Tracks returns the rows.
func (m Model) Tracks() []playlist.Track {
	return m.tracks
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.tracks)
}

// Cursor returns the selected row.
func (m Model) Cursor() int {
	return m.cursor.pos
}

// Selected returns the track under the cursor.
func (m Model) Selected() (playlist.Track, bool) {
	if m.cursor.pos >= len(m.tracks) {
		return playlist.Track{}, false
	}
	return m.tracks[m.cursor.pos], true
}

// Update handles key presses while the list is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	n, h := len(m.tracks), m.ListHeight()
	switch a := m.keys.Resolve(keyMsg.String()); a {
	case keymap.ActionMoveDown:
		m.cursor.move(1, n, h)
	case keymap.ActionMoveUp:
		m.cursor.move(-1, n, h)
	case keymap.ActionJumpStart:
		m.cursor.jump(0, n, h)
	case keymap.ActionJumpEnd:
		m.cursor.jump(n-1, n, h)
	case keymap.ActionPageDown:
		m.cursor.move(max(h/2, 1), n, h)
	case keymap.ActionPageUp:
		m.cursor.move(-max(h/2, 1), n, h)
	case keymap.ActionClear:
		if n > 0 {
			return m, action.Cmd(m.name, Activate{Action: a, Index: -1})
		}
	case keymap.ActionMoveItemUp, keymap.ActionMoveItemDown:
		delta := 1
		if a == keymap.ActionMoveItemUp {
			delta = -1
		}
		from, to := m.cursor.pos, m.cursor.pos+delta
		if n == 0 || to < 0 || to >= n {
			return m, nil
		}
		// Follow the moved row; the new order arrives with the next state.
		m.cursor.move(delta, n, h)
		return m, action.Cmd(m.name, Activate{Action: a, Index: from, Track: m.tracks[from]})
	case keymap.ActionSelect, keymap.ActionAdd, keymap.ActionPlayNext, keymap.ActionDelete:
		if t, ok := m.Selected(); ok {
			return m, action.Cmd(m.name, Activate{Action: a, Index: m.cursor.pos, Track: t})
		}
	}
	return m, nil
}

func durationColumn(_ int, t playlist.Track) string {
	return t.Duration
}
