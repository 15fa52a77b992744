package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Stop       string
	Volume     string
	VolumeMute string
	Queue      string
	History    string
	Search     string
	Lyrics     string
	Track      string
	Remote     string
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b",      // nf-fa-play
		Pause:      "\uf04c",      // nf-fa-pause
		Stop:       "\uf04d",      // nf-fa-stop
		Volume:     "\U000F057E",  // nf-md-volume_high
		VolumeMute: "\U000F075F",  // nf-md-volume_mute
		Queue:      "\U000F0CB8 ", // nf-md-playlist_music
		History:    "\uf1da ",     // nf-fa-history
		Search:     "\uf002 ",     // nf-fa-search
		Lyrics:     "\U000F0361 ", // nf-md-message_text
		Track:      "\uf001 ",     // nf-fa-music
		Remote:     "\U000F05A9",  // nf-md-wifi
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Stop:       "⏹",
		Volume:     "🔊",
		VolumeMute: "🔇",
		Queue:      "📋 ",
		History:    "🕘 ",
		Search:     "🔍 ",
		Lyrics:     "🎤 ",
		Track:      "🎵 ",
		Remote:     "📡",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Stop:       "[]",
		Volume:     "vol",
		VolumeMute: "mute",
		Queue:      "",
		History:    "",
		Search:     "/ ",
		Lyrics:     "",
		Track:      "",
		Remote:     "[remote]",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Stop returns the indicator shown when nothing is loaded.
func Stop() string {
	return current.Stop
}

// Volume returns the speaker icon for the given output level.
// A silent output (muted or zero) shows the mute icon.
func Volume(level float64) string {
	if level <= 0 {
		return current.VolumeMute
	}
	return current.Volume
}

// Remote returns the remote-control indicator.
func Remote() string {
	return current.Remote
}

// FormatQueue formats the queue tab title with the appropriate icon.
func FormatQueue(title string) string {
	return current.Queue + title
}

// FormatHistory formats the history tab title with the appropriate icon.
func FormatHistory(title string) string {
	return current.History + title
}

// FormatSearch formats the search prompt with the appropriate icon.
func FormatSearch(prompt string) string {
	return current.Search + prompt
}

// FormatLyrics formats the lyrics panel title with the appropriate icon.
func FormatLyrics(title string) string {
	return current.Lyrics + title
}

// FormatTrack formats a track title with the appropriate icon.
func FormatTrack(title string) string {
	return current.Track + title
}
