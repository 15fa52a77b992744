package playback

import "github.com/llehouerou/ytplay/internal/playlist"

// ChangeKind flags which parts of the state a mutation touched.
type ChangeKind uint8

const (
	ChangeTrack ChangeKind = 1 << iota
	ChangePlaying
	ChangeQueue
	ChangeHistory
	ChangeVolume
)

// Change is delivered to listeners once per mutation.
type Change struct {
	Previous PlaybackState
	Current  PlaybackState
	Kinds    ChangeKind
}

// Has reports whether any of the given kinds changed.
func (c Change) Has(kinds ChangeKind) bool {
	return c.Kinds&kinds != 0
}

// diff computes the change kinds between two snapshots.
func diff(prev, next PlaybackState) ChangeKind {
	var k ChangeKind
	if prev.CurrentID() != next.CurrentID() || prev.Session != next.Session {
		k |= ChangeTrack
	}
	if prev.IsPlaying != next.IsPlaying {
		k |= ChangePlaying
	}
	if !sameOrder(prev.Queue, next.Queue) {
		k |= ChangeQueue
	}
	if !sameOrder(prev.History, next.History) {
		k |= ChangeHistory
	}
	if prev.Volume != next.Volume || prev.IsMuted != next.IsMuted {
		k |= ChangeVolume
	}
	return k
}

func sameOrder(a, b []playlist.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// StateChange is emitted when the transport state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different track becomes current
// (including none).
type TrackChange struct {
	Previous *playlist.Track
	Current  *playlist.Track
}

// QueueChange is emitted when the queue or the history changes.
type QueueChange struct {
	Queue   []playlist.Track
	History []playlist.Track
}

// VolumeChange is emitted when volume or mute changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}
