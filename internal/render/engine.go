package render

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/stream"
)

const eventBufferSize = 16

// Player is the part of the transport the engine needs.
type Player interface {
	Snapshot() playback.PlaybackState
	Subscribe(l playback.Listener) (unsubscribe func())
	NextTrackFrom(session uint64)
}

// Status describes what the engine is doing with the current track.
type Status int

const (
	StatusIdle        Status = iota // nothing is current
	StatusLoading                   // resolving the stream
	StatusReady                     // stream loaded into the sink
	StatusUnavailable               // no stream could be resolved
	StatusFailed                    // the sink refused the stream
	StatusEnded                     // the stream played to the end
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusReady:
		return "Ready"
	case StatusUnavailable:
		return "Unavailable"
	case StatusFailed:
		return "Failed"
	case StatusEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Event reports a status change for a track.
type Event struct {
	Status Status
	Track  *playlist.Track
	Err    error
}

// Option configures an Engine.
type Option func(*Engine)

// WithVisualizer runs v while a loaded track is playing.
func WithVisualizer(v Visualizer) Option {
	return func(e *Engine) {
		e.viz = v
	}
}

// Engine keeps a Sink in step with the playback state. It resolves a stream
// for every new current track, discards resolutions that arrive after the
// track changed, and advances the queue when a stream ends.
type Engine struct {
	player   Player
	resolver stream.Resolver
	sink     Sink
	viz      Visualizer

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	wg     sync.WaitGroup

	unsubscribe func()

	mu        sync.Mutex
	closed    bool
	session   uint64
	track     *playlist.Track
	playing   bool
	volume    float64
	loaded    bool
	trackCtx  context.Context
	trackStop context.CancelFunc
	vizStop   context.CancelFunc
}

// NewEngine starts driving sink from p. Close the engine to stop.
func NewEngine(p Player, resolver stream.Resolver, sink Sink, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		player:   p,
		resolver: resolver,
		sink:     sink,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, eventBufferSize),
		volume:   -1,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.mu.Lock()
	e.unsubscribe = p.Subscribe(e.onChange)
	e.reconcileLocked(p.Snapshot())
	e.mu.Unlock()
	return e
}

// Events returns status updates. Events are dropped when the reader is slow.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Close stops playback, waits for background work and closes the sink.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.stopTrackLocked()
	e.mu.Unlock()

	e.unsubscribe()
	e.cancel()
	e.wg.Wait()
	return e.sink.Close()
}

// Position returns the playback position of the current track. ok is false
// when nothing is loaded or the sink cannot tell.
func (e *Engine) Position() (pos time.Duration, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, isPositioner := e.sink.(Positioner)
	if !e.loaded || !isPositioner {
		return 0, false
	}
	return p.Position(), true
}

func (e *Engine) onChange(c playback.Change) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.reconcileLocked(c.Current)
}

// reconcileLocked applies st to the sink. Applying the same state twice is
// a no-op, so a notification that races the initial snapshot is harmless.
func (e *Engine) reconcileLocked(st playback.PlaybackState) {
	if v := st.EffectiveVolume(); v != e.volume {
		e.volume = v
		e.sink.SetVolume(v)
	}

	if st.Session != e.session || st.CurrentID() != e.trackID() {
		e.startTrackLocked(st)
		return
	}

	if st.IsPlaying == e.playing {
		return
	}
	e.playing = st.IsPlaying
	if !e.loaded {
		return
	}
	e.sink.SetPaused(!e.playing)
	if e.playing {
		e.startVizLocked()
	} else {
		e.stopVizLocked()
	}
}

func (e *Engine) trackID() string {
	if e.track == nil {
		return ""
	}
	return e.track.ID
}

func (e *Engine) startTrackLocked(st playback.PlaybackState) {
	e.stopTrackLocked()

	e.session = st.Session
	e.playing = st.IsPlaying
	e.track = nil
	if st.CurrentTrack == nil {
		e.emit(Event{Status: StatusIdle})
		return
	}
	t := *st.CurrentTrack
	e.track = &t

	e.trackCtx, e.trackStop = context.WithCancel(e.ctx)
	e.emit(Event{Status: StatusLoading, Track: &t})

	e.wg.Add(1)
	go e.play(e.trackCtx, e.session, t)
}

func (e *Engine) stopTrackLocked() {
	e.stopVizLocked()
	if e.trackStop != nil {
		e.trackStop()
		e.trackStop = nil
		e.trackCtx = nil
	}
	if e.loaded {
		e.sink.Unload()
		e.loaded = false
	}
}

// currentLocked reports whether session still identifies the track being played.
func (e *Engine) currentLocked(ctx context.Context, session uint64) bool {
	return !e.closed && ctx.Err() == nil && e.session == session
}

// play resolves and loads t, then waits for it to end.
func (e *Engine) play(ctx context.Context, session uint64, t playlist.Track) {
	defer e.wg.Done()

	url, ok := e.resolver.Resolve(ctx, t.VideoID)

	e.mu.Lock()
	if !e.currentLocked(ctx, session) {
		e.mu.Unlock()
		zlog.Debug().Str("video_id", t.VideoID).Msg("discarding stale stream")
		return
	}
	if !ok {
		e.emit(Event{Status: StatusUnavailable, Track: &t})
		e.mu.Unlock()
		return
	}

	e.sink.SetPaused(!e.playing)
	done, err := e.sink.Load(ctx, url)
	if err != nil {
		e.emit(Event{Status: StatusFailed, Track: &t, Err: err})
		e.mu.Unlock()
		zlog.Warn().Err(err).Str("video_id", t.VideoID).Msg("load stream")
		return
	}
	e.loaded = true
	e.emit(Event{Status: StatusReady, Track: &t})
	if e.playing {
		e.startVizLocked()
	}
	e.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return
	}

	e.mu.Lock()
	ended := e.currentLocked(ctx, session)
	if ended {
		e.stopVizLocked()
		e.loaded = false
		e.emit(Event{Status: StatusEnded, Track: &t})
	}
	e.mu.Unlock()

	if ended {
		zlog.Debug().Str("track_id", t.ID).Msg("track ended")
		e.player.NextTrackFrom(session)
	}
}

func (e *Engine) startVizLocked() {
	if e.viz == nil || e.vizStop != nil || e.trackCtx == nil || e.track == nil {
		return
	}
	ctx, cancel := context.WithCancel(e.trackCtx)
	e.vizStop = cancel
	t := *e.track
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.viz.Run(ctx, t)
	}()
}

func (e *Engine) stopVizLocked() {
	if e.vizStop != nil {
		e.vizStop()
		e.vizStop = nil
	}
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
	}
}
