package playlist

import (
	"strconv"
	"testing"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory(0)

	if h.Cap() != HistoryLimit {
		t.Errorf("Cap() = %d, want %d", h.Cap(), HistoryLimit)
	}
	if !h.IsEmpty() {
		t.Error("new history should be empty")
	}
}

func TestHistory_Push_MostRecentFirst(t *testing.T) {
	h := NewHistory(5)

	h.Push(Track{ID: "1"})
	h.Push(Track{ID: "2"})
	h.Push(Track{ID: "3"})

	if !equalIDs(h.Tracks(), "3", "2", "1") {
		t.Errorf("Tracks() = %v, want [3 2 1]", ids(h.Tracks()))
	}
}

func TestHistory_Push_EvictsOldest(t *testing.T) {
	h := NewHistory(3)

	for i := 1; i <= 5; i++ {
		h.Push(Track{ID: strconv.Itoa(i)})
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if !equalIDs(h.Tracks(), "5", "4", "3") {
		t.Errorf("Tracks() = %v, want [5 4 3]", ids(h.Tracks()))
	}
}

func TestHistory_Push_DefaultBound(t *testing.T) {
	h := NewHistory(HistoryLimit)

	for i := range 120 {
		h.Push(Track{ID: strconv.Itoa(i)})
		if h.Len() > HistoryLimit {
			t.Fatalf("Len() = %d after %d pushes, exceeds %d", h.Len(), i+1, HistoryLimit)
		}
	}

	tracks := h.Tracks()
	if tracks[0].ID != "119" {
		t.Errorf("tracks[0] = %q, want 119", tracks[0].ID)
	}
	if tracks[HistoryLimit-1].ID != "70" {
		t.Errorf("tracks[%d] = %q, want 70", HistoryLimit-1, tracks[HistoryLimit-1].ID)
	}
}

func TestHistory_Pop(t *testing.T) {
	h := NewHistory(5)
	h.Push(Track{ID: "1"})
	h.Push(Track{ID: "2"})

	track, ok := h.Pop()

	if !ok || track.ID != "2" {
		t.Errorf("Pop() = (%q, %v), want (2, true)", track.ID, ok)
	}
	if !equalIDs(h.Tracks(), "1") {
		t.Errorf("Tracks() = %v, want [1]", ids(h.Tracks()))
	}
}

func TestHistory_Pop_Empty(t *testing.T) {
	h := NewHistory(5)

	if _, ok := h.Pop(); ok {
		t.Error("Pop() on empty history should return false")
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(5)
	h.Push(Track{ID: "1"})

	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}
