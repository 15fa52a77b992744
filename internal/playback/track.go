package playback

import "github.com/llehouerou/ytplay/internal/playlist"

// Track is the track value the transport operates on.
type Track = playlist.Track
