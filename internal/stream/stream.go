// Package stream turns video IDs into playable audio URLs with yt-dlp.
package stream

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lrstanley/go-ytdlp"
	zlog "github.com/rs/zerolog/log"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultFormat  = "bestaudio[ext=m4a]/bestaudio"
	DefaultTimeout = 10 * time.Second
)

// Resolver resolves a video ID to a stream URL. ok is false when no URL
// could be found; failures never surface as errors or panics.
type Resolver interface {
	Resolve(ctx context.Context, videoID string) (streamURL string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, videoID string) (string, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, videoID string) (string, bool) {
	return f(ctx, videoID)
}

// Config configures a YTDLP resolver.
type Config struct {
	Format  string
	Timeout time.Duration
	Proxy   string
}

// runFunc runs yt-dlp with args and returns its standard output.
type runFunc func(ctx context.Context, args ...string) (string, error)

// YTDLP resolves streams by running the yt-dlp binary.
type YTDLP struct {
	cfg Config
	run runFunc
}

// Verify YTDLP implements Resolver at compile time.
var _ Resolver = (*YTDLP)(nil)

// New creates a yt-dlp backed resolver.
func New(cfg Config) *YTDLP {
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	r := &YTDLP{cfg: cfg}
	r.run = r.runYtdlp
	return r
}

// WatchURL returns the YouTube Music page for videoID.
func WatchURL(videoID string) string {
	return "https://music.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// Resolve returns the first audio URL yt-dlp reports for videoID.
func (r *YTDLP) Resolve(ctx context.Context, videoID string) (string, bool) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, err := r.run(ctx,
		"-f", r.cfg.Format,
		"--get-url",
		"--no-playlist",
		WatchURL(videoID),
	)
	if err != nil {
		zlog.Warn().Err(err).Str("video_id", videoID).Msg("stream resolution failed")
		return "", false
	}

	u, err := firstURL(out)
	if err != nil {
		zlog.Warn().Err(err).Str("video_id", videoID).Msg("stream resolution failed")
		return "", false
	}

	zlog.Debug().
		Str("video_id", videoID).
		Dur("elapsed", time.Since(start)).
		Msg("stream resolved")
	return u, true
}

func (r *YTDLP) runYtdlp(ctx context.Context, args ...string) (string, error) {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		IgnoreConfig()
	if r.cfg.Proxy != "" {
		cmd.Proxy(r.cfg.Proxy)
	}

	res, err := cmd.Run(ctx, args...)
	if err != nil {
		return "", errors.Wrap(err, "run yt-dlp")
	}
	return res.Stdout, nil
}

// firstURL returns the first http(s) URL line in yt-dlp output.
func firstURL(out string) (string, error) {
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		u, err := url.Parse(line)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			continue
		}
		return line, nil
	}
	return "", errors.Newf("no stream URL in yt-dlp output (%d bytes)", len(out))
}
