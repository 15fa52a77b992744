package playlist

// Queue is the ordered list of tracks scheduled to play next.
// Index 0 plays next.
type Queue struct {
	tracks []Track
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the tail of the queue.
func (q *Queue) Add(tracks ...Track) {
	q.tracks = append(q.tracks, tracks...)
}

// PushFront inserts a track at the head of the queue.
func (q *Queue) PushFront(t Track) {
	q.tracks = append(q.tracks, Track{})
	copy(q.tracks[1:], q.tracks)
	q.tracks[0] = t
}

// PopFront removes and returns the head of the queue.
// Returns false if the queue is empty.
func (q *Queue) PopFront() (Track, bool) {
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	t := q.tracks[0]
	q.tracks = append(q.tracks[:0], q.tracks[1:]...)
	return t, true
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (q *Queue) Remove(index int) bool {
	if index < 0 || index >= len(q.tracks) {
		return false
	}
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	return true
}

// RemoveID removes the first track with the given ID.
// Returns false if no such track is queued.
func (q *Queue) RemoveID(id string) bool {
	return q.Remove(indexOf(q.tracks, id))
}

// Move moves the track at fromIndex to toIndex, shifting the tracks in between.
// Returns false if either index is out of bounds.
func (q *Queue) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(q.tracks) {
		return false
	}
	if toIndex < 0 || toIndex >= len(q.tracks) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	t := q.tracks[fromIndex]
	if fromIndex < toIndex {
		copy(q.tracks[fromIndex:toIndex], q.tracks[fromIndex+1:toIndex+1])
	} else {
		copy(q.tracks[toIndex+1:fromIndex+1], q.tracks[toIndex:fromIndex])
	}
	q.tracks[toIndex] = t
	return true
}

// Clear removes all tracks from the queue.
func (q *Queue) Clear() {
	q.tracks = q.tracks[:0]
}

// Tracks returns a copy of all queued tracks in play order.
func (q *Queue) Tracks() []Track {
	return clone(q.tracks)
}

// Track returns the track at the given index, or nil if out of bounds.
func (q *Queue) Track(index int) *Track {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	t := q.tracks[index]
	return &t
}

// IndexOf returns the position of the track with the given ID, or -1.
func (q *Queue) IndexOf(id string) int {
	return indexOf(q.tracks, id)
}

// Contains returns true if a track with the given ID is queued.
func (q *Queue) Contains(id string) bool {
	return q.IndexOf(id) >= 0
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if nothing is queued.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}
