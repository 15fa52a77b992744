// Package remote exposes the transport over HTTP and a websocket so other
// processes can observe and drive playback.
package remote

import (
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
)

// Command actions.
const (
	ActionPlay       = "play"
	ActionPause      = "pause"
	ActionResume     = "resume"
	ActionToggle     = "toggle"
	ActionNext       = "next"
	ActionPrevious   = "previous"
	ActionAdd        = "add"
	ActionPlayNext   = "playNext"
	ActionRemove     = "remove"
	ActionClear      = "clear"
	ActionReorder    = "reorder"
	ActionVolume     = "volume"
	ActionMute       = "mute"
	ActionToggleMute = "toggleMute"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingTrack  = errors.New("track is required")
)

// Command is one transport operation sent by a client.
type Command struct {
	Action string          `json:"action"`
	Track  *playlist.Track `json:"track,omitempty"`
	Index  int             `json:"index,omitempty"`
	To     int             `json:"to,omitempty"`
	Volume float64         `json:"volume,omitempty"`
	Muted  bool            `json:"muted,omitempty"`
}

// Apply runs cmd against t. Malformed commands are rejected before
// reaching the transport; valid ones follow its no-op rules.
func Apply(t playback.Transport, cmd Command) error {
	switch cmd.Action {
	case ActionPlay, ActionAdd, ActionPlayNext:
		if cmd.Track == nil || cmd.Track.ID == "" {
			return errors.Wrapf(ErrMissingTrack, "%s", cmd.Action)
		}
	}

	switch cmd.Action {
	case ActionPlay:
		t.PlayTrack(*cmd.Track)
	case ActionPause:
		t.PauseTrack()
	case ActionResume:
		t.ResumeTrack()
	case ActionToggle:
		t.TogglePlayback()
	case ActionNext:
		t.NextTrack()
	case ActionPrevious:
		t.PreviousTrack()
	case ActionAdd:
		t.AddToQueue(*cmd.Track)
	case ActionPlayNext:
		t.PlayNext(*cmd.Track)
	case ActionRemove:
		t.RemoveFromQueue(cmd.Index)
	case ActionClear:
		t.ClearQueue()
	case ActionReorder:
		t.ReorderQueue(cmd.Index, cmd.To)
	case ActionVolume:
		t.SetVolumeFromControl(cmd.Volume)
	case ActionMute:
		t.SetMuted(cmd.Muted)
	case ActionToggleMute:
		t.ToggleMute()
	default:
		return errors.Wrapf(ErrUnknownAction, "%q", cmd.Action)
	}
	return nil
}
