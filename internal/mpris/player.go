// Package mpris exposes the transport to desktop media controls over the
// MPRIS D-Bus interface.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
)

// Identity is the player name shown by desktop media widgets.
const Identity = "ytplay"

// Positioner reports how far into the current track playback is.
type Positioner interface {
	Position() (time.Duration, bool)
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is ignored: the terminal owns the process lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error) { return Identity, nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter on top of a
// Transport. Media keys map onto transport operations, so they follow the
// same no-op rules as the keyboard.
type playerAdapter struct {
	transport playback.Transport
	position  Positioner
}

func newPlayerAdapter(t playback.Transport, pos Positioner) *playerAdapter {
	return &playerAdapter{transport: t, position: pos}
}

func (p *playerAdapter) Next() error {
	p.transport.NextTrack()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.transport.PreviousTrack()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.transport.PauseTrack()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.transport.TogglePlayback()
	return nil
}

// Stop pauses: there is no stopped state with a track loaded.
func (p *playerAdapter) Stop() error {
	p.transport.PauseTrack()
	return nil
}

func (p *playerAdapter) Play() error {
	p.transport.ResumeTrack()
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error { return nil }

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error { return nil }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.transport.Snapshot().State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.transport.Snapshot()
	if st.CurrentTrack == nil {
		return types.Metadata{}, nil
	}
	return metadata(*st.CurrentTrack), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.transport.Snapshot().EffectiveVolume(), nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.transport.SetVolumeFromControl(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	if p.position == nil {
		return 0, nil
	}
	pos, ok := p.position.Position()
	if !ok {
		return 0, nil
	}
	return pos.Microseconds(), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.transport.Snapshot().Queue) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.transport.Snapshot().History) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.transport.Snapshot().CurrentTrack != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.transport.Snapshot().CurrentTrack != nil, nil
}

func (p *playerAdapter) CanSeek() (bool, error) { return false, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func metadata(t playlist.Track) types.Metadata {
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(t.ID)),
		Title:   t.Title,
		Artist:  []string{t.Artist},
	}
	if d, ok := playlist.ParseDuration(t.Duration); ok {
		meta.Length = types.Microseconds(d.Microseconds())
	}
	if t.HasThumbnail() {
		meta.ArtUrl = t.Thumbnail
	}
	return meta
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
