package playlist

// HistoryLimit is the number of previously played tracks kept.
const HistoryLimit = 50

// History holds previously current tracks, most recent first.
type History struct {
	tracks  []Track
	maxSize int
}

// NewHistory creates a new history bounded to maxSize entries.
// A non-positive maxSize falls back to HistoryLimit.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = HistoryLimit
	}
	return &History{
		tracks:  make([]Track, 0, maxSize),
		maxSize: maxSize,
	}
}

// Push records t as the most recent entry.
// The oldest entry is evicted once the bound is exceeded.
func (h *History) Push(t Track) {
	if len(h.tracks) < h.maxSize {
		h.tracks = append(h.tracks, Track{})
	}
	copy(h.tracks[1:], h.tracks)
	h.tracks[0] = t
}

// Pop removes and returns the most recent entry.
// Returns false if the history is empty.
func (h *History) Pop() (Track, bool) {
	if len(h.tracks) == 0 {
		return Track{}, false
	}
	t := h.tracks[0]
	h.tracks = append(h.tracks[:0], h.tracks[1:]...)
	return t, true
}

// Tracks returns a copy of the history, most recent first.
func (h *History) Tracks() []Track {
	return clone(h.tracks)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.tracks)
}

// Cap returns the maximum number of entries kept.
func (h *History) Cap() int {
	return h.maxSize
}

// IsEmpty returns true if nothing has been played yet.
func (h *History) IsEmpty() bool {
	return len(h.tracks) == 0
}

// Clear forgets all entries.
func (h *History) Clear() {
	h.tracks = h.tracks[:0]
}
