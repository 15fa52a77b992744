package state

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/ytplay/internal/playback"
)

// VolumeState represents the saved volume state.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// GetVolume returns the saved volume state, with playback.DefaultVolume
// and unmuted for anything not saved yet.
func (m *Manager) GetVolume() (*VolumeState, error) {
	vs := &VolumeState{Volume: playback.DefaultVolume}

	v, ok, err := m.Get(playback.KeyVolume)
	if err != nil {
		return nil, err
	}
	if ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse saved volume %q", v)
		}
		vs.Volume = f
	}

	v, ok, err = m.Get(playback.KeyMuted)
	if err != nil {
		return nil, err
	}
	if ok {
		vs.Muted = v == "true"
	}

	return vs, nil
}

// SaveVolume persists the volume level and mute flag together.
func (m *Manager) SaveVolume(ctx context.Context, volume float64, muted bool) error {
	return m.SetMany(ctx, map[string]string{
		playback.KeyVolume: strconv.FormatFloat(volume, 'f', -1, 64),
		playback.KeyMuted:  strconv.FormatBool(muted),
	})
}
