package app

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/llehouerou/ytplay/internal/catalog"
	"github.com/llehouerou/ytplay/internal/playback"
	"github.com/llehouerou/ytplay/internal/playlist"
	"github.com/llehouerou/ytplay/internal/render"
	"github.com/llehouerou/ytplay/internal/ui/action"
	"github.com/llehouerou/ytplay/internal/ui/headerbar"
	"github.com/llehouerou/ytplay/internal/ui/testutil"
)

func track(id, title string) playlist.Track {
	return playlist.Track{ID: id, VideoID: "v" + id, Title: title, Artist: "Artist " + id, Duration: "3:00"}
}

var (
	trackA = track("a", "Alpha Song")
	trackB = track("b", "Bravo Song")
	trackC = track("c", "Charlie Tune")
)

var testSections = []catalog.Section{
	{Title: "Top Hits", Tracks: []playlist.Track{trackA, trackB}},
	{Title: "Chill", Tracks: []playlist.Track{trackB, trackC}},
}

type fakeEngine struct {
	events chan render.Event
	pos    time.Duration
	ok     bool
}

func (e *fakeEngine) Events() <-chan render.Event { return e.events }

func (e *fakeEngine) Position() (time.Duration, bool) { return e.pos, e.ok }

func newTestModelWith(t *testing.T, deps Deps) (Model, *playback.Controller) {
	t.Helper()
	ctrl := playback.NewController(playback.NewStore(), nil)
	deps.Transport = ctrl
	if deps.Catalog == nil {
		deps.Catalog = catalog.NewStatic([]playlist.Track{trackA, trackB, trackC}, testSections)
	}
	m := New(deps)
	t.Cleanup(m.Close)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, FeaturedLoadedMsg{Sections: testSections})
	return m, ctrl
}

func newTestModel(t *testing.T) (Model, *playback.Controller) {
	t.Helper()
	return newTestModelWith(t, Deps{})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	if !ok {
		t.Fatal("Update should return Model")
	}
	return result, cmd
}

// pressKey sends a key without running the command it returns.
func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, testutil.Key(key))
}

// pressAction sends a key and delivers the component action it produces.
func pressAction(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	m, cmd := pressKey(t, m, key)
	msg, ok := testutil.Exec(cmd).(action.Msg)
	if !ok {
		t.Fatalf("key %q produced no action", key)
	}
	return update(t, m, msg)
}

func ids(tracks []playlist.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m, _ := newTestModel(t)

	if m.Width != 120 || m.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.Width, m.Height)
	}

	view := testutil.StripANSI(m.View())
	for _, want := range []string{"Featured", "Queue", "Nothing playing"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if lines := len(strings.Split(m.View(), "\n")); lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}
}

func TestView_EmptyBeforeSize(t *testing.T) {
	ctrl := playback.NewController(playback.NewStore(), nil)
	m := New(Deps{Transport: ctrl, Catalog: catalog.NewStatic(nil, nil)})
	defer m.Close()
	if got := m.View(); got != "" {
		t.Errorf("View() = %q, want empty", got)
	}
}

func TestFeaturedLoaded_DedupesAcrossSections(t *testing.T) {
	m, _ := newTestModel(t)

	if got := ids(m.Featured.Tracks()); strings.Join(got, ",") != "a,b,c" {
		t.Errorf("featured = %v, want [a b c]", got)
	}
	if !testutil.ContainsLine(m.Featured.View(), "Top Hits") {
		t.Error("featured rows should show their section")
	}
}

func TestTrackActions_FeedTheTransport(t *testing.T) {
	m, ctrl := newTestModel(t)

	m, _ = pressAction(t, m, "enter")
	if got := ctrl.Snapshot().CurrentID(); got != "a" {
		t.Fatalf("current = %q, want a", got)
	}
	if !m.State().IsPlaying {
		t.Error("model should see playback start")
	}

	m, _ = pressKey(t, m, "j")
	m, _ = pressAction(t, m, "a")
	m, _ = pressKey(t, m, "j")
	m, _ = pressAction(t, m, "n")

	want := "c,b"
	if got := strings.Join(ids(ctrl.Snapshot().Queue), ","); got != want {
		t.Errorf("queue = %s, want %s", got, want)
	}
	if got := strings.Join(ids(m.Queue.Tracks()), ","); got != want {
		t.Errorf("queue panel = %s, want %s", got, want)
	}
}

func TestQueuePanel_EditsQueue(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddToQueue(trackA)
	ctrl.AddToQueue(trackB)
	ctrl.AddToQueue(trackC)
	m, _ = update(t, m, syncMsg{})

	m, _ = pressKey(t, m, "tab")
	if m.Focus != FocusQueue {
		t.Fatalf("Focus = %v, want FocusQueue", m.Focus)
	}

	m, _ = pressAction(t, m, "J")
	if got := strings.Join(ids(ctrl.Snapshot().Queue), ","); got != "b,a,c" {
		t.Errorf("after move down queue = %s, want b,a,c", got)
	}

	// The cursor follows the moved track.
	m, _ = pressAction(t, m, "d")
	if got := strings.Join(ids(ctrl.Snapshot().Queue), ","); got != "b,c" {
		t.Errorf("after delete queue = %s, want b,c", got)
	}

	m, _ = pressAction(t, m, "enter")
	if got := ctrl.Snapshot().CurrentID(); got != "c" {
		t.Errorf("current = %q, want c", got)
	}

	m, _ = pressAction(t, m, "c")
	if !m.Confirm.Active() {
		t.Fatal("clearing the queue should ask first")
	}
	if !strings.Contains(testutil.StripANSI(m.View()), "Clear queue?") {
		t.Error("view should show the confirm dialog")
	}
	m, _ = pressAction(t, m, "y")
	if len(ctrl.Snapshot().Queue) != 0 {
		t.Errorf("queue should be cleared, got %v", ids(ctrl.Snapshot().Queue))
	}
	if m.Queue.Len() != 0 {
		t.Errorf("queue panel has %d rows, want 0", m.Queue.Len())
	}
}

func TestQueuePanel_ClearCancelled(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddToQueue(trackA)
	m, _ = update(t, m, syncMsg{})
	m, _ = pressKey(t, m, "tab")

	m, _ = pressAction(t, m, "c")
	// Keys go to the dialog while it is open.
	m, _ = pressKey(t, m, "tab")
	if m.Focus != FocusQueue {
		t.Error("focus should not change while confirming")
	}
	m, _ = pressAction(t, m, "esc")

	if m.Confirm.Active() {
		t.Error("dialog should close on cancel")
	}
	if len(ctrl.Snapshot().Queue) != 1 {
		t.Errorf("queue = %v, want it untouched", ids(ctrl.Snapshot().Queue))
	}
}

func TestQueuePanel_ClearEmptyQueueSkipsDialog(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = pressKey(t, m, "tab")
	m, cmd := pressKey(t, m, "c")
	if msg, ok := testutil.Exec(cmd).(action.Msg); ok {
		m, _ = update(t, m, msg)
	}
	if m.Confirm.Active() {
		t.Error("nothing to clear, no dialog expected")
	}
}

func TestPlaybackKeys(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})

	m, _ = pressKey(t, m, " ")
	if ctrl.Snapshot().IsPlaying {
		t.Error("space should pause")
	}

	m, _ = pressKey(t, m, "+")
	if got := ctrl.Snapshot().Volume; math.Abs(got-(playback.DefaultVolume+VolumeStep)) > 1e-9 {
		t.Errorf("volume = %v, want %v", got, playback.DefaultVolume+VolumeStep)
	}

	m, _ = pressKey(t, m, "m")
	if !ctrl.Snapshot().IsMuted || !m.State().IsMuted {
		t.Error("m should mute")
	}

	m, _ = pressKey(t, m, "-")
	if got := ctrl.Snapshot().Volume; math.Abs(got-playback.DefaultVolume) > 1e-9 {
		t.Errorf("volume = %v, want %v", got, playback.DefaultVolume)
	}

	_, _ = pressKey(t, m, ">")
	if ctrl.Snapshot().CurrentTrack != nil {
		t.Error("next with an empty queue should stop")
	}
}

func TestVolumeUp_ClampsAtMax(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.SetVolume(0.98)
	m, _ = update(t, m, syncMsg{})

	_, _ = pressKey(t, m, "+")
	if got := ctrl.Snapshot().Volume; got != 1 {
		t.Errorf("volume = %v, want 1", got)
	}
}

func TestSearch_Flow(t *testing.T) {
	m, ctrl := newTestModel(t)

	m, _ = pressKey(t, m, "/")
	if m.Focus != FocusSearch {
		t.Fatalf("Focus = %v, want FocusSearch", m.Focus)
	}

	// Bound keys are typed into the input while searching.
	m, _ = pressKey(t, m, "charlie")
	if got := m.Search.Value(); got != "charlie" {
		t.Fatalf("search value = %q, want charlie", got)
	}

	m, cmd := pressAction(t, m, "enter")
	if m.ViewMode != headerbar.ViewSearch || m.Focus != FocusMain {
		t.Errorf("after submit view=%v focus=%v, want search view with main focus", m.ViewMode, m.Focus)
	}
	result, ok := testutil.Exec(cmd).(SearchResultMsg)
	if !ok {
		t.Fatalf("expected SearchResultMsg, got %T", testutil.Exec(cmd))
	}
	m, _ = update(t, m, result)

	if got := ids(m.Results.Tracks()); len(got) != 1 || got[0] != "c" {
		t.Fatalf("results = %v, want [c]", got)
	}
	if !testutil.ContainsLine(m.View(), `Results for "charlie"`) {
		t.Error("results title should show the query")
	}

	_, _ = pressAction(t, m, "enter")
	if got := ctrl.Snapshot().CurrentID(); got != "c" {
		t.Errorf("current = %q, want c", got)
	}
}

func TestSearch_StaleResultsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m.query = "new"

	m, _ = update(t, m, SearchResultMsg{Query: "old", Tracks: []playlist.Track{trackA}})
	if m.Results.Len() != 0 {
		t.Errorf("stale results should be dropped, got %d rows", m.Results.Len())
	}
}

func TestSearch_EmptyQueryNotSubmitted(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = pressKey(t, m, "/")

	_, cmd := pressKey(t, m, "enter")
	if cmd != nil {
		t.Error("an empty query should not be submitted")
	}
}

func TestSearch_CancelRestoresFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = pressKey(t, m, "tab")
	m, _ = pressKey(t, m, "/")

	m, _ = pressAction(t, m, "esc")
	if m.Focus != FocusQueue {
		t.Errorf("Focus = %v, want FocusQueue", m.Focus)
	}
	if m.searchVisible() {
		t.Error("search bar should hide when cancelled from the home view")
	}
}

func TestEngineEvent_Failure(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})

	m, _ = update(t, m, EngineEventMsg{Event: render.Event{Status: render.StatusFailed, Track: &trackB, Err: errors.New("stale")}})
	if m.ErrorMsg != "" {
		t.Errorf("events for other tracks should be ignored, got %q", m.ErrorMsg)
	}

	m, _ = update(t, m, EngineEventMsg{Event: render.Event{Status: render.StatusFailed, Track: &trackA, Err: errors.New("boom")}})
	if !strings.Contains(m.ErrorMsg, "boom") || !strings.Contains(m.ErrorMsg, "Alpha Song") {
		t.Errorf("ErrorMsg = %q", m.ErrorMsg)
	}
	if m.Status() != "Failed" {
		t.Errorf("status = %q, want Failed", m.Status())
	}
	if !testutil.ContainsLine(m.View(), "boom") {
		t.Error("error should be shown in the header")
	}

	m, _ = pressKey(t, m, "j")
	if m.ErrorMsg != "" {
		t.Error("a key press should dismiss the error")
	}
}

func TestEngineEvent_Status(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})

	m, _ = update(t, m, EngineEventMsg{Event: render.Event{Status: render.StatusLoading, Track: &trackA}})
	if m.Status() != "Loading" {
		t.Errorf("status = %q, want Loading", m.Status())
	}

	m, _ = update(t, m, EngineEventMsg{Event: render.Event{Status: render.StatusUnavailable, Track: &trackA}})
	if m.Status() != "Unavailable" || !strings.Contains(m.ErrorMsg, "no stream available") {
		t.Errorf("status = %q, error = %q", m.Status(), m.ErrorMsg)
	}

	m, _ = update(t, m, EngineEventMsg{Event: render.Event{Status: render.StatusReady, Track: &trackA}})
	if m.Status() != "" {
		t.Errorf("status = %q, want empty", m.Status())
	}
}

func TestEngineEvent_RearmsWatcher(t *testing.T) {
	engine := &fakeEngine{events: make(chan render.Event, 1)}
	m, _ := newTestModelWith(t, Deps{Engine: engine})

	_, cmd := update(t, m, EngineEventMsg{Event: render.Event{Status: render.StatusIdle}})
	if cmd == nil {
		t.Fatal("expected the engine watcher to be re-armed")
	}
	engine.events <- render.Event{Status: render.StatusLoading, Track: &trackA}
	msg, ok := cmd().(EngineEventMsg)
	if !ok || msg.Event.Status != render.StatusLoading {
		t.Errorf("watcher returned %#v", msg)
	}
}

func TestFrames_OnlyForCurrentTrack(t *testing.T) {
	frames := make(chan render.Frame)
	m, ctrl := newTestModelWith(t, Deps{Frames: frames})
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})

	var bins [render.Bins]uint8
	for i := range bins {
		bins[i] = 200
	}

	m, cmd := update(t, m, FrameMsg{Frame: render.Frame{TrackID: "b", Bins: bins}})
	if m.Spectrum.Active() {
		t.Error("frames for another track should be ignored")
	}
	if cmd == nil {
		t.Error("expected the frame watcher to be re-armed")
	}

	m, _ = update(t, m, FrameMsg{Frame: render.Frame{TrackID: "a", Bins: bins}})
	if !m.Spectrum.Active() {
		t.Error("frames for the current track should light the bars")
	}
	if !m.visualizerVisible() {
		t.Error("visualizer should be shown while a track is current")
	}
	if lines := len(strings.Split(m.View(), "\n")); lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}

	ctrl.NextTrack()
	m, _ = update(t, m, syncMsg{})
	if m.Spectrum.Active() {
		t.Error("bars should clear when the track changes")
	}
}

func TestTick_UsesEnginePosition(t *testing.T) {
	engine := &fakeEngine{events: make(chan render.Event), pos: 42 * time.Second, ok: true}
	m, ctrl := newTestModelWith(t, Deps{Engine: engine})
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})
	if !m.ticking {
		t.Fatal("playback should start the ticker")
	}

	m, cmd := update(t, m, TickMsg(time.Now()))
	if m.Position() != 42*time.Second {
		t.Errorf("position = %v, want 42s", m.Position())
	}
	if cmd == nil {
		t.Error("ticker should continue while playing")
	}

	ctrl.PauseTrack()
	m, _ = update(t, m, syncMsg{})
	m, cmd = update(t, m, TickMsg(time.Now()))
	if cmd != nil || m.ticking {
		t.Error("ticker should stop while paused")
	}
}

func TestTick_EstimatesWithoutEngine(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})

	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Position() != 2*TickInterval {
		t.Errorf("position = %v, want %v", m.Position(), 2*TickInterval)
	}

	ctrl.PlayTrack(trackB)
	m, _ = update(t, m, syncMsg{})
	if m.Position() != 0 {
		t.Errorf("position should reset on a new track, got %v", m.Position())
	}
}

func TestHistory_ShowsPlayedTime(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})
	ctrl.PlayTrack(trackB)
	m, _ = update(t, m, syncMsg{})

	if _, ok := m.playedAt["a"]; !ok {
		t.Fatal("played time should be recorded for a")
	}

	m, _ = pressKey(t, m, "h")
	if !m.ShowHistory {
		t.Fatal("h should show history")
	}
	line := testutil.FindLine(m.History.View(), "Alpha Song")
	if !strings.Contains(line, "now") {
		t.Errorf("history row = %q, want relative time", line)
	}

	// Replaying from history.
	m, _ = pressKey(t, m, "tab")
	_, _ = pressAction(t, m, "enter")
	if got := ctrl.Snapshot().CurrentID(); got != "a" {
		t.Errorf("current = %q, want a", got)
	}
}

func TestHistory_PrunesPlayedTime(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.PlayTrack(trackA)
	m, _ = update(t, m, syncMsg{})
	ctrl.PlayTrack(trackB)
	m, _ = update(t, m, syncMsg{})

	ctrl.PreviousTrack()
	m, _ = update(t, m, syncMsg{})
	if _, ok := m.playedAt["a"]; ok {
		t.Error("tracks leaving history should drop their played time")
	}
}

func TestHelp_OpenClose(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = pressKey(t, m, "?")
	if !m.ShowHelp {
		t.Fatal("? should open help")
	}
	if !testutil.ContainsLine(m.View(), "Play/pause") {
		t.Error("help should list bindings")
	}

	// Keys go to the help overlay, not the lists.
	m, _ = pressAction(t, m, "esc")
	if m.ShowHelp {
		t.Error("esc should close help")
	}
	if m.ViewMode != headerbar.ViewHome {
		t.Errorf("View = %v, want home", m.ViewMode)
	}
}

func TestLyrics_Toggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.setView(headerbar.ViewSearch)

	m, _ = pressKey(t, m, "L")
	if m.ViewMode != headerbar.ViewLyrics {
		t.Fatalf("View = %v, want lyrics", m.ViewMode)
	}
	if !testutil.ContainsLine(m.View(), "Lyrics") {
		t.Error("lyrics panel should be shown")
	}

	m, _ = pressKey(t, m, "L")
	if m.ViewMode != headerbar.ViewSearch {
		t.Errorf("View = %v, want search", m.ViewMode)
	}

	m, _ = pressKey(t, m, "esc")
	if m.ViewMode != headerbar.ViewHome {
		t.Errorf("View = %v, want home", m.ViewMode)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := pressKey(t, m, "q")
	if _, ok := testutil.Exec(cmd).(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestServiceChanged_SyncsExternalChanges(t *testing.T) {
	m, ctrl := newTestModel(t)
	ctrl.AddToQueue(trackC)

	m, cmd := update(t, m, ServiceChangedMsg{})
	if m.Queue.Len() != 1 {
		t.Errorf("queue panel has %d rows, want 1", m.Queue.Len())
	}
	if cmd == nil {
		t.Error("expected the service watcher to be re-armed")
	}
}

func TestWatchServiceEvents(t *testing.T) {
	ctrl := playback.NewController(playback.NewStore(), nil)
	sub := ctrl.Watch()
	cmd := WatchServiceEvents(sub)

	ctrl.AddToQueue(trackA)
	if _, ok := cmd().(ServiceChangedMsg); !ok {
		t.Error("expected ServiceChangedMsg")
	}

	closed := ctrl.Watch()
	closed.Close()
	if _, ok := WatchServiceEvents(closed)().(ServiceClosedMsg); !ok {
		t.Error("expected ServiceClosedMsg")
	}

	if WatchServiceEvents(nil) != nil {
		t.Error("nil subscription should give a nil command")
	}
	sub.Close()
}

func TestNarrowLayout_StacksPanels(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	if m.Queue.Width() != 80 || m.Featured.Width() != 80 {
		t.Errorf("narrow widths: featured=%d queue=%d, want 80", m.Featured.Width(), m.Queue.Width())
	}
	if lines := len(strings.Split(m.View(), "\n")); lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}
}
