package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/ui/headerbar"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.ErrorMsg = ""

	if m.Confirm.Active() {
		var cmd tea.Cmd
		m.Confirm, cmd = m.Confirm.Update(msg)
		return cmd
	}

	if m.ShowHelp {
		var cmd tea.Cmd
		m.Help, cmd = m.Help.Update(msg)
		return cmd
	}

	if m.Focus == FocusSearch {
		if key == "ctrl+c" {
			return tea.Quit
		}
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return cmd
	}

	if cmd, ok := m.handleGlobalKey(m.keys.Resolve(key)); ok {
		return cmd
	}
	return m.routeKeyToFocused(msg)
}

// handleGlobalKey runs actions available regardless of focus.
func (m *Model) handleGlobalKey(a keymap.Action) (tea.Cmd, bool) {
	switch a {
	case keymap.ActionQuit:
		return tea.Quit, true
	case keymap.ActionSwitchFocus:
		if m.Focus == FocusQueue {
			m.setFocus(FocusMain)
		} else {
			m.setFocus(FocusQueue)
		}
		return nil, true
	case keymap.ActionSearch:
		m.setFocus(FocusSearch)
		return m.Search.Focus(), true
	case keymap.ActionHome:
		m.setView(headerbar.ViewHome)
		m.setFocus(FocusMain)
		return nil, true
	case keymap.ActionToggleLyrics:
		if m.ViewMode == headerbar.ViewLyrics {
			m.setView(m.prevView)
		} else {
			m.setView(headerbar.ViewLyrics)
		}
		m.setFocus(FocusMain)
		return nil, true
	case keymap.ActionToggleHistory:
		m.ShowHistory = !m.ShowHistory
		m.applyFocus()
		return nil, true
	case keymap.ActionHelp:
		m.ShowHelp = true
		return nil, true
	}
	return m.handlePlaybackKey(a)
}

func (m *Model) handlePlaybackKey(a keymap.Action) (tea.Cmd, bool) {
	switch a {
	case keymap.ActionPlayPause:
		m.transport.TogglePlayback()
	case keymap.ActionNextTrack:
		m.transport.NextTrack()
	case keymap.ActionPrevTrack:
		m.transport.PreviousTrack()
	case keymap.ActionVolumeUp:
		m.transport.SetVolumeFromControl(min(m.state.Volume+VolumeStep, 1))
	case keymap.ActionVolumeDown:
		m.transport.SetVolumeFromControl(max(m.state.Volume-VolumeStep, 0))
	case keymap.ActionToggleMute:
		m.transport.ToggleMute()
	default:
		return nil, false
	}
	return m.sync(), true
}

// routeKeyToFocused sends a key to the focused panel.
func (m *Model) routeKeyToFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.Focus {
	case FocusQueue:
		l := m.sideList()
		*l, cmd = l.Update(msg)
	case FocusMain:
		if l := m.mainList(); l != nil {
			*l, cmd = l.Update(msg)
		} else {
			cmd = m.Lyrics.Update(msg)
		}
	case FocusSearch:
	}
	return cmd
}
