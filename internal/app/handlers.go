package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/ui/confirm"
	"github.com/llehouerou/ytplay/internal/ui/tracklist"
)

// handleTrackAction maps a list action onto the transport. The queue panel
// edits the queue in place; every other list feeds tracks into it.
func (m *Model) handleTrackAction(source string, a tracklist.Activate) tea.Cmd {
	zlog.Debug().
		Str("source", source).
		Str("action", string(a.Action)).
		Int("index", a.Index).
		Str("track_id", a.Track.ID).
		Msg("track action")

	if source == SourceQueue {
		switch a.Action {
		case keymap.ActionSelect:
			m.transport.PlayTrack(a.Track)
		case keymap.ActionDelete:
			m.transport.RemoveFromQueue(a.Index)
		case keymap.ActionClear:
			m.confirmClearQueue()
			return nil
		case keymap.ActionMoveItemUp:
			m.transport.ReorderQueue(a.Index, a.Index-1)
		case keymap.ActionMoveItemDown:
			m.transport.ReorderQueue(a.Index, a.Index+1)
		default:
			return nil
		}
		return m.sync()
	}

	switch a.Action {
	case keymap.ActionSelect:
		m.transport.PlayTrack(a.Track)
	case keymap.ActionAdd:
		m.transport.AddToQueue(a.Track)
	case keymap.ActionPlayNext:
		m.transport.PlayNext(a.Track)
	default:
		return nil
	}
	return m.sync()
}

// clearQueueContext tags the confirm dialog opened by the queue panel.
type clearQueueContext struct{}

func (m *Model) confirmClearQueue() {
	n := len(m.transport.Snapshot().Queue)
	if n == 0 {
		return
	}
	noun := "tracks"
	if n == 1 {
		noun = "track"
	}
	m.Confirm.Show("Clear queue?", fmt.Sprintf("%d %s will be removed.", n, noun), clearQueueContext{})
}

func (m *Model) handleConfirm(r confirm.Result) tea.Cmd {
	if !r.Confirmed {
		return nil
	}
	if _, ok := r.Context.(clearQueueContext); ok {
		m.transport.ClearQueue()
		return m.sync()
	}
	return nil
}
