package notify

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
)

// AppName is the application name sent with every notification.
const AppName = "ytplay"

// NowPlayingTimeout is how long a track notification stays on screen, in ms.
const NowPlayingTimeout int32 = 4000

// NowPlaying builds the notification shown when t starts.
func NowPlaying(t playlist.Track) Notification {
	body := t.Artist
	if t.Duration != "" {
		body = strings.TrimSpace(body + " · " + t.Duration)
	}
	return Notification{
		Title:   t.Title,
		Body:    body,
		Icon:    "audio-x-generic",
		Timeout: NowPlayingTimeout,
		Urgency: UrgencyLow,
	}
}

// WatchTracks sends a notification each time a new track becomes current,
// replacing the previous one, until ctx is done or sub closes.
func WatchTracks(ctx context.Context, n Notifier, sub *playback.Subscription) {
	var lastID uint32
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case ev := <-sub.TrackChanged:
			if ev.Current == nil {
				continue
			}
			notif := NowPlaying(*ev.Current)
			notif.ReplacesID = lastID
			id, err := n.Notify(notif)
			if err != nil {
				zlog.Debug().Err(err).Str("track", ev.Current.ID).Msg("notify")
				continue
			}
			lastID = id
		}
	}
}
