package playback

// Transport defines the operations the UI layers may issue.
// All operations are synchronous and never fail: invalid input is a no-op.
type Transport interface {
	// Playback control
	PlayTrack(t Track)
	PauseTrack()
	ResumeTrack()
	TogglePlayback()
	NextTrack()
	PreviousTrack()

	// Queue manipulation
	AddToQueue(t Track)
	PlayNext(t Track)
	RemoveFromQueue(index int)
	ClearQueue()
	ReorderQueue(oldIndex, newIndex int)

	// Volume
	SetVolume(v float64)
	SetVolumeFromControl(v float64)
	SetMuted(muted bool)
	ToggleMute()

	// State queries
	Snapshot() PlaybackState
	Subscribe(l Listener) (unsubscribe func())
	Watch() *Subscription
}

// Verify Controller implements Transport at compile time.
var _ Transport = (*Controller)(nil)
