// internal/playback/state.go
package playback

import "github.com/llehouerou/ytplay/internal/playlist"

// State represents the transport state derived from a PlaybackState.
type State int

const (
	StateStopped State = iota // nothing loaded
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// PlaybackState is a point-in-time copy of everything the player tracks.
// Values returned by Store.Snapshot share no memory with the store.
type PlaybackState struct {
	CurrentTrack *playlist.Track  `json:"currentTrack"`
	IsPlaying    bool             `json:"isPlaying"`
	Queue        []playlist.Track `json:"queue"`
	History      []playlist.Track `json:"history"`
	Volume       float64          `json:"volume"`
	IsMuted      bool             `json:"isMuted"`

	// Session increments every time a track is loaded as current, so that
	// replaying the same track is distinguishable from keeping it.
	Session uint64 `json:"session"`
}

// State returns the transport state.
func (p PlaybackState) State() State {
	switch {
	case p.CurrentTrack == nil:
		return StateStopped
	case p.IsPlaying:
		return StatePlaying
	default:
		return StatePaused
	}
}

// EffectiveVolume is the output level the audio sink should use.
func (p PlaybackState) EffectiveVolume() float64 {
	if p.IsMuted {
		return 0
	}
	return p.Volume
}

// CurrentID returns the current track ID, or "" when nothing is loaded.
func (p PlaybackState) CurrentID() string {
	if p.CurrentTrack == nil {
		return ""
	}
	return p.CurrentTrack.ID
}
