package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/ytplay/internal/catalog"
	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/render"
)

// TickInterval is how often the position is refreshed while playing.
const TickInterval = 250 * time.Millisecond

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next playback
// event. Every kind of change maps to ServiceChangedMsg: the model reads
// the full snapshot anyway.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
		case <-sub.TrackChanged:
		case <-sub.QueueChanged:
		case <-sub.VolumeChanged:
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
		return ServiceChangedMsg{}
	}
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchEngine returns a command that waits for the next engine event.
func WatchEngine(events <-chan render.Event) tea.Cmd {
	return waitForChannel(events, func(ev render.Event, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return EngineEventMsg{Event: ev}
	})
}

// WatchFrames returns a command that waits for the next visualizer frame.
func WatchFrames(frames <-chan render.Frame) tea.Cmd {
	return waitForChannel(frames, func(f render.Frame, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return FrameMsg{Frame: f}
	})
}

// LoadFeaturedCmd fetches the home view sections.
func LoadFeaturedCmd(ctx context.Context, c catalog.Client) tea.Cmd {
	return func() tea.Msg {
		return FeaturedLoadedMsg{Sections: c.Featured(ctx)}
	}
}

// SearchCmd runs one catalog search.
func SearchCmd(ctx context.Context, c catalog.Client, query string) tea.Cmd {
	return func() tea.Msg {
		return SearchResultMsg{Query: query, Tracks: c.Search(ctx, query)}
	}
}
