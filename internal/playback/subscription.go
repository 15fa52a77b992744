package playback

import (
	"slices"
	"sync"
)

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
// Sends are non-blocking: a slow reader loses events, never the store.
type Subscription struct {
	StateChanged  <-chan StateChange
	TrackChanged  <-chan TrackChange
	QueueChanged  <-chan QueueChange
	VolumeChanged <-chan VolumeChange
	Done          <-chan struct{}

	// Internal write channels
	stateCh  chan StateChange
	trackCh  chan TrackChange
	queueCh  chan QueueChange
	volumeCh chan VolumeChange
	doneCh   chan struct{}

	unsubscribe func()
	closeOnce   sync.Once
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:  make(chan StateChange, eventBufferSize),
		trackCh:  make(chan TrackChange, eventBufferSize),
		queueCh:  make(chan QueueChange, eventBufferSize),
		volumeCh: make(chan VolumeChange, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.QueueChanged = s.queueCh
	s.VolumeChanged = s.volumeCh
	s.Done = s.doneCh
	return s
}

// Close detaches the subscription from the store and closes Done.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		close(s.doneCh)
	})
}

// dispatch converts a store change into channel events.
func (s *Subscription) dispatch(c Change) {
	if c.Has(ChangeTrack) {
		s.sendTrack(TrackChange{Previous: c.Previous.CurrentTrack, Current: c.Current.CurrentTrack})
	}
	if prev, curr := c.Previous.State(), c.Current.State(); prev != curr {
		s.sendState(StateChange{Previous: prev, Current: curr})
	}
	if c.Has(ChangeQueue | ChangeHistory) {
		// Each subscriber gets its own slices.
		s.sendQueue(QueueChange{
			Queue:   slices.Clone(c.Current.Queue),
			History: slices.Clone(c.Current.History),
		})
	}
	if c.Has(ChangeVolume) {
		s.sendVolume(VolumeChange{Volume: c.Current.Volume, Muted: c.Current.IsMuted})
	}
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendTrack sends a track change event (non-blocking).
func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

// sendQueue sends a queue change event (non-blocking).
func (s *Subscription) sendQueue(e QueueChange) {
	select {
	case s.queueCh <- e:
	default:
	}
}

// sendVolume sends a volume change event (non-blocking).
func (s *Subscription) sendVolume(e VolumeChange) {
	select {
	case s.volumeCh <- e:
	default:
	}
}
