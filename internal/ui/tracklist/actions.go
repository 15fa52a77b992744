package tracklist

import (
	"github.com/llehouerou/ytplay/internal/keymap"
	"github.com/llehouerou/ytplay/internal/playlist"
)

// Activate is emitted when the user triggers a track action on a row.
// Index is the row in the list; Track is the track shown there.
// Clear carries no track.
type Activate struct {
	Action keymap.Action
	Index  int
	Track  playlist.Track
}

// ActionType implements action.Action.
func (a Activate) ActionType() string { return "tracklist." + string(a.Action) }
