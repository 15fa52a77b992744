// internal/playback/controller.go
package playback

import (
	"strconv"
	"sync"

	zlog "github.com/rs/zerolog/log"
)

// Controller is the only write path into a Store.
// Operations are applied one at a time, in call order, and each sees the
// result of the previous one. Using a Controller that was not created by
// NewController panics.
type Controller struct {
	store    *Store
	settings Settings

	// opMu serializes whole operations including listener notification,
	// so observers see changes in the order operations were issued.
	opMu sync.Mutex
}

// Option configures a Controller.
type Option func(*controllerOptions)

type controllerOptions struct {
	defaultVolume float64
}

// WithDefaultVolume sets the volume used when no value has been saved.
func WithDefaultVolume(v float64) Option {
	return func(o *controllerOptions) {
		o.defaultVolume = clampVolume(v)
	}
}

// NewController creates a Controller over store, seeding volume and mute
// from settings. settings may be nil, in which case nothing is persisted.
func NewController(store *Store, settings Settings, opts ...Option) *Controller {
	if store == nil {
		panic("playback: NewController called with nil store")
	}
	o := controllerOptions{defaultVolume: DefaultVolume}
	for _, opt := range opts {
		opt(&o)
	}

	volume, muted := loadSettings(settings, o.defaultVolume)
	store.mu.Lock()
	store.volume = volume
	store.muted = muted
	store.mu.Unlock()

	return &Controller{store: store, settings: settings}
}

// mustStore fails fast when the controller was never wired to a store.
func (c *Controller) mustStore() *Store {
	if c == nil || c.store == nil {
		panic("playback: transport operation on an uninitialized Controller")
	}
	return c.store
}

// Store returns the underlying store.
func (c *Controller) Store() *Store {
	return c.mustStore()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() PlaybackState {
	return c.mustStore().Snapshot()
}

// Subscribe registers a synchronous listener on the underlying store.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	return c.mustStore().Subscribe(l)
}

// Watch returns a channel subscription on the underlying store.
func (c *Controller) Watch() *Subscription {
	return c.mustStore().Watch()
}

func (c *Controller) apply(fn func(s *Store) bool) {
	c.applyThen(fn, nil)
}

// applyThen runs fn as one operation. When fn changed the state, then is
// called before the next operation may start.
func (c *Controller) applyThen(fn func(s *Store) bool, then func()) {
	s := c.mustStore()
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if s.update(func() bool { return fn(s) }) && then != nil {
		then()
	}
}

// PlayTrack makes t current and starts playing it. The previous current
// track, if any, is recorded in history. The queue is left untouched.
func (c *Controller) PlayTrack(t Track) {
	c.apply(func(s *Store) bool {
		if s.current != nil {
			s.history.Push(*s.current)
		}
		s.setCurrentLocked(t)
		s.playing = true
		return true
	})
	zlog.Debug().Str("track_id", t.ID).Str("video_id", t.VideoID).Msg("play track")
}

// PauseTrack stops playback without unloading the current track.
func (c *Controller) PauseTrack() {
	c.apply(func(s *Store) bool {
		if !s.playing {
			return false
		}
		s.playing = false
		return true
	})
}

// ResumeTrack resumes the current track. It does nothing when no track is
// loaded.
func (c *Controller) ResumeTrack() {
	c.apply(func(s *Store) bool {
		if s.current == nil || s.playing {
			return false
		}
		s.playing = true
		return true
	})
}

// TogglePlayback pauses when playing and resumes otherwise.
func (c *Controller) TogglePlayback() {
	c.apply(func(s *Store) bool {
		if s.current == nil {
			return false
		}
		s.playing = !s.playing
		return true
	})
}

// NextTrack advances to the head of the queue, moving the current track to
// the front of history. With an empty queue playback stops, nothing is
// current and history is unchanged.
func (c *Controller) NextTrack() {
	c.apply((*Store).advanceLocked)
}

// NextTrackFrom is NextTrack for a caller that observed session. It does
// nothing if the current track has changed or been cleared since.
func (c *Controller) NextTrackFrom(session uint64) {
	c.apply(func(s *Store) bool {
		if s.current == nil || s.session != session {
			return false
		}
		return s.advanceLocked()
	})
}

func (s *Store) advanceLocked() bool {
	next, ok := s.queue.PopFront()
	if !ok {
		if s.current == nil {
			return false
		}
		s.current = nil
		s.playing = false
		return true
	}
	if s.current != nil {
		s.history.Push(*s.current)
	}
	s.setCurrentLocked(next)
	s.playing = true
	return true
}

// PreviousTrack returns to the most recent history entry, moving the
// current track back to the front of the queue. It does nothing when the
// history is empty.
func (c *Controller) PreviousTrack() {
	c.apply(func(s *Store) bool {
		prev, ok := s.history.Pop()
		if !ok {
			return false
		}
		if s.current != nil {
			s.queue.RemoveID(s.current.ID)
			s.queue.PushFront(*s.current)
		}
		s.queue.RemoveID(prev.ID)
		s.setCurrentLocked(prev)
		s.playing = true
		return true
	})
}

// AddToQueue appends t to the queue. A track already queued stays where it is.
func (c *Controller) AddToQueue(t Track) {
	c.apply(func(s *Store) bool {
		if s.queue.Contains(t.ID) {
			return false
		}
		s.queue.Add(t)
		return true
	})
}

// PlayNext puts t at the head of the queue, moving it there if it was
// already queued.
func (c *Controller) PlayNext(t Track) {
	c.apply(func(s *Store) bool {
		if s.queue.IndexOf(t.ID) == 0 {
			return false
		}
		s.queue.RemoveID(t.ID)
		s.queue.PushFront(t)
		return true
	})
}

// RemoveFromQueue removes the entry at index. Out-of-range indices are ignored.
func (c *Controller) RemoveFromQueue(index int) {
	c.apply(func(s *Store) bool {
		return s.queue.Remove(index)
	})
}

// ClearQueue empties the queue.
func (c *Controller) ClearQueue() {
	c.apply(func(s *Store) bool {
		if s.queue.IsEmpty() {
			return false
		}
		s.queue.Clear()
		return true
	})
}

// ReorderQueue moves the entry at oldIndex to newIndex, shifting the
// entries in between. Out-of-range indices are ignored.
func (c *Controller) ReorderQueue(oldIndex, newIndex int) {
	c.apply(func(s *Store) bool {
		return s.queue.Move(oldIndex, newIndex)
	})
}

// SetVolume sets the output volume, clamped to [0,1]. It does not change
// the mute flag.
func (c *Controller) SetVolume(v float64) {
	c.setVolume(clampVolume(v), false)
}

// SetVolumeFromControl sets the volume from a user control. Any audible
// value also unmutes.
func (c *Controller) SetVolumeFromControl(v float64) {
	v = clampVolume(v)
	c.setVolume(v, v > 0)
}

func (c *Controller) setVolume(v float64, unmute bool) {
	var volumeChanged, muteChanged bool
	c.applyThen(func(s *Store) bool {
		if s.volume != v {
			s.volume = v
			volumeChanged = true
		}
		if unmute && s.muted {
			s.muted = false
			muteChanged = true
		}
		return volumeChanged || muteChanged
	}, func() {
		if volumeChanged {
			saveSetting(c.settings, KeyVolume, formatVolume(v))
		}
		if muteChanged {
			saveSetting(c.settings, KeyMuted, strconv.FormatBool(false))
		}
	})
}

// SetMuted sets the mute flag.
func (c *Controller) SetMuted(muted bool) {
	c.applyThen(func(s *Store) bool {
		if s.muted == muted {
			return false
		}
		s.muted = muted
		return true
	}, func() {
		saveSetting(c.settings, KeyMuted, strconv.FormatBool(muted))
	})
}

// ToggleMute flips the mute flag.
func (c *Controller) ToggleMute() {
	var muted bool
	c.applyThen(func(s *Store) bool {
		s.muted = !s.muted
		muted = s.muted
		return true
	}, func() {
		saveSetting(c.settings, KeyMuted, strconv.FormatBool(muted))
	})
}
