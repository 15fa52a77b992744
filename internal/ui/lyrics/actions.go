package lyrics

import (
	"github.com/llehouerou/ytplay/internal/lyrics"
)

// FetchedMsg is sent when lyrics have been fetched.
type FetchedMsg struct {
	TrackID string
	Result  lyrics.FetchResult
}
