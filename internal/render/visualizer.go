package render

import (
	"context"
	"time"

	"github.com/llehouerou/ytplay/internal/playlist"
)

// Bins is the number of frequency bins in a Frame.
const Bins = 64

// DefaultFrameInterval is the refresh period of a Spectrum.
const DefaultFrameInterval = 50 * time.Millisecond

// Visualizer runs for one track while it plays. Run returns when ctx is done.
type Visualizer interface {
	Run(ctx context.Context, t playlist.Track)
}

// Frame is one visualizer update. A frame with all-zero bins is sent when
// a run stops, so displays can clear.
type Frame struct {
	TrackID string
	Bins    [Bins]uint8
}

// Spectrum samples an Analyser at a fixed rate and publishes frames.
type Spectrum struct {
	analyser Analyser
	interval time.Duration
	frames   chan Frame
}

// Verify Spectrum implements Visualizer at compile time.
var _ Visualizer = (*Spectrum)(nil)

// NewSpectrum creates a Spectrum over a. interval <= 0 means
// DefaultFrameInterval.
func NewSpectrum(a Analyser, interval time.Duration) *Spectrum {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Spectrum{
		analyser: a,
		interval: interval,
		frames:   make(chan Frame, 1),
	}
}

// Frames returns the frame stream. Only the latest frame is kept for a slow
// reader.
func (s *Spectrum) Frames() <-chan Frame {
	return s.frames
}

// Run publishes frames for t until ctx is done.
func (s *Spectrum) Run(ctx context.Context, t playlist.Track) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.publish(Frame{TrackID: t.ID})
			return
		case <-ticker.C:
			f := Frame{TrackID: t.ID}
			s.analyser.FrequencyData(f.Bins[:])
			s.publish(f)
		}
	}
}

// publish replaces any unread frame with f.
func (s *Spectrum) publish(f Frame) {
	for {
		select {
		case s.frames <- f:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}
