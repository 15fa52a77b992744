package playback

import (
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/playlist"
)

// DefaultVolume is the volume used when nothing has been saved yet.
const DefaultVolume = 0.7

// Listener is called synchronously after every state mutation.
// Listeners must not call transport operations from within the callback.
type Listener func(Change)

type listenerEntry struct {
	id uuid.UUID
	fn Listener
}

// Store holds the playback state and notifies listeners on mutation.
// The only write path is through a Controller.
type Store struct {
	mu sync.RWMutex

	current *playlist.Track
	playing bool
	queue   *playlist.Queue
	history *playlist.History
	volume  float64
	muted   bool
	session uint64

	subsMu    sync.RWMutex
	listeners []listenerEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		queue:   playlist.NewQueue(),
		history: playlist.NewHistory(playlist.HistoryLimit),
		volume:  DefaultVolume,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() PlaybackState {
	var current *playlist.Track
	if s.current != nil {
		t := *s.current
		current = &t
	}
	return PlaybackState{
		CurrentTrack: current,
		IsPlaying:    s.playing,
		Queue:        s.queue.Tracks(),
		History:      s.history.Tracks(),
		Volume:       s.volume,
		IsMuted:      s.muted,
		Session:      s.session,
	}
}

// Subscribe registers a listener and returns a function that removes it.
// The returned function is safe to call more than once.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	id := uuid.New()

	s.subsMu.Lock()
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})
	s.subsMu.Unlock()

	zlog.Debug().Str("listener", id.String()).Msg("playback listener added")

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			for i, e := range s.listeners {
				if e.id == id {
					s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
					break
				}
			}
		})
	}
}

// Watch returns a channel-based subscription for goroutine consumers.
// Close the subscription to stop receiving events.
func (s *Store) Watch() *Subscription {
	sub := newSubscription()
	sub.unsubscribe = s.Subscribe(sub.dispatch)
	return sub
}

// update applies fn under the write lock. fn reports whether it changed
// anything; if so, listeners are notified once with the resulting Change
// after the lock is released. update reports whether listeners were notified.
func (s *Store) update(fn func() bool) bool {
	s.mu.Lock()
	prev := s.snapshotLocked()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	// I1: nothing loaded means nothing playing.
	if s.current == nil {
		s.playing = false
	}
	next := s.snapshotLocked()
	s.mu.Unlock()

	kinds := diff(prev, next)
	if kinds == 0 {
		return false
	}
	s.notify(Change{Previous: prev, Current: next, Kinds: kinds})
	return true
}

func (s *Store) notify(c Change) {
	s.subsMu.RLock()
	listeners := make([]Listener, len(s.listeners))
	for i, e := range s.listeners {
		listeners[i] = e.fn
	}
	s.subsMu.RUnlock()

	for _, l := range listeners {
		l(c)
	}
}

// setCurrentLocked makes t the current track and starts a new session.
func (s *Store) setCurrentLocked(t playlist.Track) {
	s.current = &t
	s.session++
}
