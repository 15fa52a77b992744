// Package player plays remote audio streams through the system speaker.
// Streams are decoded to PCM by an ffmpeg subprocess and mixed with beep.
package player

import (
	"context"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	zlog "github.com/rs/zerolog/log"
)

// SampleRate is the output rate every stream is resampled to.
const SampleRate beep.SampleRate = 44100

// DefaultFFmpeg is the decoder binary looked up in PATH.
const DefaultFFmpeg = "ffmpeg"

// Config configures a Speaker.
type Config struct {
	// FFmpeg is the decoder binary. Empty means DefaultFFmpeg.
	FFmpeg string
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

// Speaker is a single audio output reused across tracks.
type Speaker struct {
	ffmpeg string
	tap    *tap

	mu     sync.Mutex
	track  *track
	volume float64
	paused bool
}

type track struct {
	src    *pcmStream
	cancel context.CancelFunc
	ctrl   *beep.Ctrl
	vol    *effects.Volume
	done   chan struct{}
	once   sync.Once
}

func (t *track) finish() {
	t.once.Do(func() { close(t.done) })
}

// New opens the speaker. It fails when the decoder binary is missing or the
// audio device cannot be initialized.
func New(cfg Config) (*Speaker, error) {
	if cfg.FFmpeg == "" {
		cfg.FFmpeg = DefaultFFmpeg
	}
	path, err := exec.LookPath(cfg.FFmpeg)
	if err != nil {
		return nil, errors.Wrapf(err, "find decoder %q", cfg.FFmpeg)
	}
	if err := initSpeaker(); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	return &Speaker{
		ffmpeg: path,
		tap:    newTap(),
		volume: 1,
	}, nil
}

// Load stops the current stream and starts decoding url. The returned
// channel is closed when the stream ends, fails, or is unloaded.
func (s *Speaker) Load(ctx context.Context, url string) (<-chan struct{}, error) {
	s.Unload()

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.ffmpeg, decodeArgs(url)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "decoder stdout")
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, errors.Wrap(err, "start decoder")
	}

	src := newPCMStream(ctx, stdout, func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			zlog.Warn().Err(err).Msg("decoder exited")
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &track{src: src, cancel: cancel, done: make(chan struct{})}
	t.ctrl = &beep.Ctrl{Streamer: s.tap.wrap(src), Paused: s.paused}
	t.vol = &effects.Volume{Streamer: t.ctrl, Base: 2}
	applyLevel(t.vol, s.volume)
	s.track = t
	s.tap.reset()

	speaker.Play(beep.Seq(t.vol, beep.Callback(t.finish)))
	return t.done, nil
}

// SetPaused pauses or resumes output. The value also applies to the next Load.
func (s *Speaker) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	if s.track == nil {
		return
	}
	speaker.Lock()
	s.track.ctrl.Paused = paused
	speaker.Unlock()
}

// SetVolume sets the output level (0.0 to 1.0).
func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampLevel(level)
	if s.track == nil {
		return
	}
	speaker.Lock()
	applyLevel(s.track.vol, s.volume)
	speaker.Unlock()
}

// Unload stops the current stream, if any.
func (s *Speaker) Unload() {
	s.mu.Lock()
	t := s.track
	s.track = nil
	s.mu.Unlock()
	if t == nil {
		return
	}
	speaker.Clear()
	t.cancel()
	t.finish()
}

// Position returns how much of the current stream has been played.
func (s *Speaker) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track == nil {
		return 0
	}
	return SampleRate.D(int(s.track.src.played.Load()))
}

// FrequencyData fills dst with the spectrum of the most recent output.
func (s *Speaker) FrequencyData(dst []uint8) {
	s.tap.frequencyData(dst)
}

// Close stops playback and releases the audio device.
func (s *Speaker) Close() error {
	s.Unload()
	speaker.Close()
	return nil
}

func decodeArgs(url string) []string {
	return []string{
		"-nostdin",
		"-loglevel", "error",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-i", url,
		"-vn",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(int(SampleRate)),
		"pipe:1",
	}
}
