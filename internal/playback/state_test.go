// internal/playback/state_test.go
package playback

import (
	"testing"

	"github.com/llehouerou/ytplay/internal/playlist"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateStopped, false},
		{StatePlaying, true},
		{StatePaused, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestPlaybackState_State(t *testing.T) {
	track := &playlist.Track{ID: "1"}
	tests := []struct {
		name string
		ps   PlaybackState
		want State
	}{
		{"empty", PlaybackState{}, StateStopped},
		{"playing flag without track", PlaybackState{IsPlaying: true}, StateStopped},
		{"playing", PlaybackState{CurrentTrack: track, IsPlaying: true}, StatePlaying},
		{"paused", PlaybackState{CurrentTrack: track}, StatePaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ps.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaybackState_EffectiveVolume(t *testing.T) {
	ps := PlaybackState{Volume: 0.4}
	if got := ps.EffectiveVolume(); got != 0.4 {
		t.Errorf("EffectiveVolume() = %v, want 0.4", got)
	}
	ps.IsMuted = true
	if got := ps.EffectiveVolume(); got != 0 {
		t.Errorf("EffectiveVolume() muted = %v, want 0", got)
	}
}

func TestPlaybackState_CurrentID(t *testing.T) {
	if got := (PlaybackState{}).CurrentID(); got != "" {
		t.Errorf("CurrentID() = %q, want empty", got)
	}
	ps := PlaybackState{CurrentTrack: &playlist.Track{ID: "abc"}}
	if got := ps.CurrentID(); got != "abc" {
		t.Errorf("CurrentID() = %q, want abc", got)
	}
}
