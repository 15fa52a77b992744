package lyrics

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/lrclib"
)

// ErrNotFound is returned when no lyrics exist for a track.
var ErrNotFound = errors.New("lyrics not found")

// Service looks lyrics up by title and artist.
type Service interface {
	GetLyrics(ctx context.Context, title, artist string) (*Lyrics, error)
}

// Fetcher is the subset of the lrclib client the Source needs.
type Fetcher interface {
	Get(ctx context.Context, q lrclib.Query) (*lrclib.LyricsResult, error)
	Search(ctx context.Context, query string) ([]lrclib.LyricsResult, error)
}

// Source provides lyrics from the on-disk cache or the lrclib API.
type Source struct {
	client   Fetcher
	cacheDir string
}

// Verify Source implements Service at compile time.
var _ Service = (*Source)(nil)

// NewSource creates a lyrics source. An empty cacheDir disables caching.
func NewSource(client Fetcher, cacheDir string) *Source {
	return &Source{client: client, cacheDir: cacheDir}
}

// TrackInfo contains the information needed to fetch lyrics.
type TrackInfo struct {
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
}

// FetchResult contains the result of a lyrics fetch.
type FetchResult struct {
	Lyrics *Lyrics
	Source string // "cache", "api", or "not_found"
	Err    error
}

// GetLyrics returns lyrics for title by artist, or ErrNotFound.
func (s *Source) GetLyrics(ctx context.Context, title, artist string) (*Lyrics, error) {
	res := s.Fetch(ctx, TrackInfo{Artist: artist, Title: title})
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Lyrics == nil {
		return nil, ErrNotFound
	}
	return res.Lyrics, nil
}

// Fetch retrieves lyrics for a track using the priority order:
// 1. Cached .lrc file
// 2. lrclib exact match (and cache the result)
// 3. lrclib search, first result with lyrics
func (s *Source) Fetch(ctx context.Context, track TrackInfo) FetchResult {
	track.Artist = primaryArtist(track.Artist)
	if track.Artist == "" || track.Title == "" {
		return FetchResult{Source: "not_found"}
	}

	if lyrics, err := s.loadFromFile(s.cachePath(track.Artist, track.Title)); err == nil && len(lyrics.Lines) > 0 {
		return FetchResult{Lyrics: lyrics, Source: "cache"}
	}

	return s.fetchFromAPI(ctx, track)
}

// fetchFromAPI fetches lyrics from the lrclib API.
func (s *Source) fetchFromAPI(ctx context.Context, track TrackInfo) FetchResult {
	result, err := s.client.Get(ctx, lrclib.Query{
		Artist:   track.Artist,
		Title:    track.Title,
		Album:    track.Album,
		Duration: track.Duration,
	})
	if errors.Is(err, lrclib.ErrNotFound) {
		result, err = s.searchFallback(ctx, track)
	}
	if err != nil {
		if errors.Is(err, lrclib.ErrNotFound) {
			return FetchResult{Source: "not_found"}
		}
		zlog.Warn().Err(err).Str("artist", track.Artist).Str("title", track.Title).Msg("lyrics fetch failed")
		return FetchResult{Source: "not_found", Err: err}
	}

	lyrics := parseResult(result)
	if lyrics == nil || len(lyrics.Lines) == 0 {
		return FetchResult{Source: "not_found"}
	}

	if result.HasSyncedLyrics() {
		if err := s.saveToCache(track.Artist, track.Title, result.SyncedLyrics); err != nil {
			zlog.Debug().Err(err).Msg("lyrics cache write failed")
		}
	}

	return FetchResult{Lyrics: lyrics, Source: "api"}
}

// searchFallback looks for a fuzzy match when the exact signature is unknown
// to lrclib, preferring synced results.
func (s *Source) searchFallback(ctx context.Context, track TrackInfo) (*lrclib.LyricsResult, error) {
	results, err := s.client.Search(ctx, track.Artist+" "+track.Title)
	if err != nil {
		return nil, err
	}
	var plain *lrclib.LyricsResult
	for i := range results {
		r := &results[i]
		if r.HasSyncedLyrics() {
			return r, nil
		}
		if plain == nil && r.HasPlainLyrics() {
			plain = r
		}
	}
	if plain != nil {
		return plain, nil
	}
	return nil, lrclib.ErrNotFound
}

// parseResult turns an API result into Lyrics. Synced lyrics win over plain
// text; plain text becomes unsynced lines.
func parseResult(result *lrclib.LyricsResult) *Lyrics {
	var lyrics *Lyrics
	switch {
	case result.HasSyncedLyrics():
		var err error
		lyrics, err = ParseLRC(strings.NewReader(result.SyncedLyrics))
		if err != nil {
			return nil
		}
	case result.HasPlainLyrics():
		lyrics = ParsePlain(result.PlainLyrics)
	default:
		return nil
	}

	if lyrics.Artist == "" {
		lyrics.Artist = result.ArtistName
	}
	if lyrics.Title == "" {
		lyrics.Title = result.TrackName
	}
	if lyrics.Album == "" {
		lyrics.Album = result.AlbumName
	}
	return lyrics
}

// primaryArtist keeps the first name of a ", " joined artist list.
func primaryArtist(artist string) string {
	first, _, _ := strings.Cut(artist, ", ")
	return strings.TrimSpace(first)
}

// loadFromFile loads lyrics from an LRC file.
func (s *Source) loadFromFile(path string) (*Lyrics, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLRC(f)
}

// cachePath returns the cache file path for a track.
func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

// saveToCache saves LRC content to the cache directory.
func (s *Source) saveToCache(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create lyrics cache directory")
	}
	return errors.Wrap(os.WriteFile(path, []byte(content), 0o600), "write lyrics cache")
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// sanitizeFilename replaces characters that are problematic in filenames.
func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
