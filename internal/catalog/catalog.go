// Package catalog looks tracks up on YouTube Music.
//
// Every call fails soft: network or parse errors are logged and the caller
// gets an empty result, never an error.
package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/raitonoberu/ytmusic"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/ytplay/internal/playlist"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultSearchLimit   = 20
	DefaultFeaturedLimit = 5
	DefaultTimeout       = 15 * time.Second
)

// Section is a titled group of tracks shown on the home view.
type Section struct {
	Title  string           `json:"title"`
	Tracks []playlist.Track `json:"tracks"`
}

// Client resolves queries to playable tracks.
type Client interface {
	Search(ctx context.Context, query string) []playlist.Track
	Featured(ctx context.Context) []Section
}

// Config configures a YTMusic client.
type Config struct {
	SearchLimit     int
	FeaturedLimit   int
	FeaturedQueries []string
	Timeout         time.Duration
}

// searchFunc runs one YouTube Music track search.
type searchFunc func(ctx context.Context, query string) ([]item, error)

// item is the subset of a search result the player uses.
type item struct {
	VideoID    string
	Title      string
	Artists    []string
	Duration   int // seconds
	Thumbnails []string
}

// YTMusic is a Client backed by the YouTube Music web API.
type YTMusic struct {
	cfg    Config
	search searchFunc
}

// Verify YTMusic implements Client at compile time.
var _ Client = (*YTMusic)(nil)

// New creates a YouTube Music client.
func New(cfg Config) *YTMusic {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.FeaturedLimit <= 0 {
		cfg.FeaturedLimit = DefaultFeaturedLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &YTMusic{cfg: cfg, search: ytmusicSearch}
}

// Search returns at most SearchLimit tracks for query.
func (c *YTMusic) Search(ctx context.Context, query string) []playlist.Track {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return c.lookup(ctx, query, c.cfg.SearchLimit)
}

// Featured runs every featured query concurrently. Sections whose query
// fails or returns nothing are left out; order follows FeaturedQueries.
func (c *YTMusic) Featured(ctx context.Context) []Section {
	sections := make([]Section, len(c.cfg.FeaturedQueries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, q := range c.cfg.FeaturedQueries {
		g.Go(func() error {
			sections[i] = Section{Title: q, Tracks: c.lookup(gctx, q, c.cfg.FeaturedLimit)}
			return nil
		})
	}
	_ = g.Wait()

	out := sections[:0]
	for _, s := range sections {
		if len(s.Tracks) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func (c *YTMusic) lookup(ctx context.Context, query string, limit int) []playlist.Track {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	items, err := c.search(ctx, query)
	if err != nil {
		zlog.Warn().Err(err).Str("query", query).Msg("catalog search failed")
		return nil
	}

	tracks := make([]playlist.Track, 0, min(len(items), limit))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if len(tracks) == limit {
			break
		}
		if it.VideoID == "" || seen[it.VideoID] {
			continue
		}
		seen[it.VideoID] = true
		tracks = append(tracks, toTrack(it))
	}
	zlog.Debug().Str("query", query).Int("results", len(tracks)).Msg("catalog search")
	return tracks
}

// toTrack maps a search result onto the player's track model.
func toTrack(it item) playlist.Track {
	names := make([]string, 0, len(it.Artists))
	for _, a := range it.Artists {
		if a != "" {
			names = append(names, a)
		}
	}

	var thumb string
	if n := len(it.Thumbnails); n > 0 {
		// Thumbnails are ordered smallest first.
		thumb = it.Thumbnails[n-1]
	}

	var duration string
	if it.Duration > 0 {
		duration = playlist.FormatSeconds(it.Duration)
	}

	return playlist.Track{
		ID:        it.VideoID,
		Title:     it.Title,
		Artist:    strings.Join(names, ", "),
		Thumbnail: thumb,
		Duration:  duration,
		VideoID:   it.VideoID,
	}
}

// ytmusicSearch runs a search with the ytmusic package. The package has no
// context support, so the request keeps running in the background after ctx
// ends and its result is dropped.
func ytmusicSearch(ctx context.Context, query string) ([]item, error) {
	type result struct {
		items []item
		err   error
	}
	done := make(chan result, 1)
	go func() {
		r, err := ytmusic.TrackSearch(query).Next()
		if err != nil {
			done <- result{err: err}
			return
		}
		items := make([]item, 0, len(r.Tracks))
		for _, t := range r.Tracks {
			if t == nil {
				continue
			}
			it := item{VideoID: t.VideoID, Title: t.Title, Duration: t.Duration}
			for _, a := range t.Artists {
				it.Artists = append(it.Artists, a.Name)
			}
			for _, th := range t.Thumbnails {
				it.Thumbnails = append(it.Thumbnails, th.URL)
			}
			items = append(items, it)
		}
		done <- result{items: items}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.items, r.err
	}
}

// Static is a Client over fixed data, useful offline and in tests.
type Static struct {
	mu       sync.RWMutex
	tracks   []playlist.Track
	sections []Section
}

// NewStatic creates a Static client.
func NewStatic(tracks []playlist.Track, sections []Section) *Static {
	return &Static{tracks: tracks, sections: sections}
}

// Search returns the tracks whose title or artist contains query.
func (s *Static) Search(_ context.Context, query string) []playlist.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []playlist.Track
	for _, t := range s.tracks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Artist), q) {
			out = append(out, t)
		}
	}
	return out
}

// Featured returns the fixed sections.
func (s *Static) Featured(context.Context) []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Section(nil), s.sections...)
}
