package playback

import (
	"strconv"

	zlog "github.com/rs/zerolog/log"
)

// Settings keys.
const (
	KeyVolume = "musicPlayerVolume"
	KeyMuted  = "musicPlayerMuted"
)

// Settings is a simple key-value store for persisted player preferences.
type Settings interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// loadSettings reads the saved volume and mute flag.
// Missing or unreadable values fall back to the given defaults.
func loadSettings(s Settings, defaultVolume float64) (volume float64, muted bool) {
	volume = defaultVolume
	if s == nil {
		return volume, false
	}

	if v, ok, err := s.Get(KeyVolume); err != nil {
		zlog.Warn().Err(err).Str("key", KeyVolume).Msg("read setting")
	} else if ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			volume = clampVolume(f)
		} else {
			zlog.Warn().Str("key", KeyVolume).Str("value", v).Msg("invalid saved volume")
		}
	}

	if v, ok, err := s.Get(KeyMuted); err != nil {
		zlog.Warn().Err(err).Str("key", KeyMuted).Msg("read setting")
	} else if ok {
		muted, _ = strconv.ParseBool(v)
	}

	return volume, muted
}

// saveSetting writes a value, logging failures.
func saveSetting(s Settings, key, value string) {
	if s == nil {
		return
	}
	if err := s.Set(key, value); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("save setting")
	}
}

func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampVolume(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
