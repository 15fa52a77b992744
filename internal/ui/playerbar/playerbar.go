// Package playerbar renders the now-playing bar: track, transport state,
// progress and volume.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/ytplay/internal/icons"
	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/ui/render"
	"github.com/llehouerou/ytplay/internal/ui/styles"
)

const separator = " · "

// State holds everything needed to render the player bar.
type State struct {
	Track    *playlist.Track
	Playing  bool
	Status   string // audio status shown beside the title, "" when nothing to report
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
	Remote   bool
}

// NewState builds the bar state from a playback snapshot and the position
// reported by the audio engine.
func NewState(st playback.PlaybackState, position time.Duration, status string) State {
	s := State{
		Track:    st.CurrentTrack,
		Playing:  st.IsPlaying,
		Status:   status,
		Position: position,
		Volume:   st.Volume,
		Muted:    st.IsMuted,
	}
	if st.CurrentTrack != nil {
		if d, ok := playlist.ParseDuration(st.CurrentTrack.Duration); ok {
			s.Duration = d
		}
	}
	if s.Duration > 0 {
		s.Position = min(s.Position, s.Duration)
	}
	return s
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border and padding

	var content string
	if s.Track == nil {
		idle := styles.T().S().Muted.Render(icons.Stop() + " Nothing playing")
		content = render.Row(idle, renderRight(s), innerWidth) + "\n" +
			render.EmptyLine(innerWidth)
	} else {
		content = renderInfo(s, innerWidth) + "\n" + renderProgress(s, innerWidth)
	}

	return styles.PanelStyle(false).
		Padding(0, 2).
		Width(width - 2).
		Render(content)
}

// renderInfo renders "▶ Title · Artist        Loading  🔊 70%".
func renderInfo(s State, width int) string {
	st := styles.T().S()

	status := icons.Pause()
	if s.Playing {
		status = icons.Play()
	}

	right := renderRight(s)
	available := max(width-lipgloss.Width(status)-1-lipgloss.Width(right)-2, 0)

	title := s.Track.Title
	if title == "" {
		title = "Unknown Track"
	}
	titleWidth := lipgloss.Width(title)
	sepWidth := lipgloss.Width(separator)

	var left string
	switch {
	case s.Track.Artist != "" && titleWidth+sepWidth < available:
		artist := render.Truncate(s.Track.Artist, available-titleWidth-sepWidth)
		left = st.Title.Render(render.Sanitize(title)) + st.Muted.Render(separator+artist)
	default:
		left = st.Title.Render(render.Truncate(title, available))
	}

	return render.Row(st.Playing.Render(status)+" "+left, right, width)
}

// renderRight renders the status, remote indicator and volume.
func renderRight(s State) string {
	st := styles.T().S()

	var parts []string
	if s.Status != "" {
		parts = append(parts, st.Warning.Render(s.Status))
	}
	if s.Remote {
		parts = append(parts, st.Muted.Render(icons.Remote()))
	}
	parts = append(parts, renderVolume(s.Volume, s.Muted))
	return strings.Join(parts, "  ")
}

// renderVolume renders "🔊  70%", or the mute icon when the output is silent.
func renderVolume(volume float64, muted bool) string {
	level := volume
	if muted {
		level = 0
	}
	pct := int(volume*100 + 0.5)
	return styles.T().S().Muted.Render(fmt.Sprintf("%s %3d%%", icons.Volume(level), pct))
}
