// Package playlist holds the track model and the ordered collections the
// player works on: the forward queue and the bounded play history.
package playlist

// Track is a playable song as returned by the catalog.
// Tracks are immutable values; two tracks are the same song when their IDs match.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"` // empty means fallback artwork
	Duration  string `json:"duration"`  // display string, M:SS or H:MM:SS
	VideoID   string `json:"videoId"`   // resolved to a stream URL at play time
}

// Equal reports whether t and other refer to the same track.
func (t Track) Equal(other Track) bool {
	return t.ID == other.ID
}

// HasThumbnail returns true if the track carries its own artwork.
func (t Track) HasThumbnail() bool {
	return t.Thumbnail != ""
}

// clone returns a copy of tracks that shares no backing array with it.
func clone(tracks []Track) []Track {
	result := make([]Track, len(tracks))
	copy(result, tracks)
	return result
}

// indexOf returns the position of the track with the given ID, or -1.
func indexOf(tracks []Track, id string) int {
	for i := range tracks {
		if tracks[i].ID == id {
			return i
		}
	}
	return -1
}
