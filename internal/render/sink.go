// Package render turns playback state into audio output and visualizer
// frames. It observes the store and never mutates it, except to advance
// the queue when a track finishes.
package render

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// Sink is the single audio output the engine drives. Implementations must
// return from every method quickly; Load starts playback in the background.
type Sink interface {
	// Load starts playing url. The returned channel is closed when playback
	// of url ends for any reason.
	Load(ctx context.Context, url string) (done <-chan struct{}, err error)
	SetPaused(paused bool)
	SetVolume(v float64)
	Unload()
	Close() error
}

// Analyser is implemented by sinks that can report the output spectrum.
type Analyser interface {
	// FrequencyData fills dst with per-bin magnitudes, low frequencies first.
	FrequencyData(dst []uint8)
}

// Positioner is implemented by sinks that can report the playback
// position of the loaded stream.
type Positioner interface {
	Position() time.Duration
}

// LogSink is a Sink that only logs. Used when no audio backend is available.
type LogSink struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Verify LogSink implements Sink at compile time.
var _ Sink = (*LogSink)(nil)

// NewLogSink creates a LogSink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Load logs url. The returned channel closes only when the track is
// unloaded or ctx ends.
func (s *LogSink) Load(ctx context.Context, url string) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, s.cancel = context.WithCancel(ctx)
	zlog.Info().Str("url", url).Msg("audio output disabled, not playing stream")
	return ctx.Done(), nil
}

func (s *LogSink) SetPaused(paused bool) {
	zlog.Debug().Bool("paused", paused).Msg("sink pause")
}

func (s *LogSink) SetVolume(v float64) {
	zlog.Debug().Float64("volume", v).Msg("sink volume")
}

func (s *LogSink) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *LogSink) Close() error {
	s.Unload()
	return nil
}
