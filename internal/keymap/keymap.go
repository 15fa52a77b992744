package keymap

// Contexts a binding can belong to.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextList     = "list"
	ContextTracks   = "tracks"
	ContextQueue    = "queue"
	ContextLyrics   = "lyrics"
)

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains every key binding, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", ContextGlobal},
	{ActionSearch, []string{"/"}, "Search", ContextGlobal},
	{ActionHome, []string{"esc"}, "Back to featured", ContextGlobal},
	{ActionToggleLyrics, []string{"L"}, "Toggle lyrics", ContextGlobal},
	{ActionToggleHistory, []string{"h"}, "Queue / history", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionNextTrack, []string{"pgdown", ">"}, "Next track", ContextPlayback},
	{ActionPrevTrack, []string{"pgup", "<"}, "Previous track", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextPlayback},
	{ActionToggleMute, []string{"m"}, "Mute", ContextPlayback},

	// Lists
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextList},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextList},
	{ActionJumpStart, []string{"g", "home"}, "First item", ContextList},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", ContextList},
	{ActionPageUp, []string{"ctrl+u"}, "Page up", ContextList},
	{ActionPageDown, []string{"ctrl+d"}, "Page down", ContextList},

	// Search results and featured tracks
	{ActionSelect, []string{"enter"}, "Play now", ContextTracks},
	{ActionPlayNext, []string{"n"}, "Play next", ContextTracks},
	{ActionAdd, []string{"a"}, "Add to queue", ContextTracks},

	// Queue panel
	{ActionSelect, []string{"enter"}, "Play track", ContextQueue},
	{ActionDelete, []string{"d", "delete"}, "Remove", ContextQueue},
	{ActionClear, []string{"c"}, "Clear queue", ContextQueue},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move up", ContextQueue},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move down", ContextQueue},

	// Lyrics panel
	{ActionFollowLyrics, []string{"c"}, "Follow current line", ContextLyrics},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContexts builds a resolver over the bindings of the given contexts.
// Later contexts win when two of them bind the same key.
func ForContexts(contexts ...string) *Resolver {
	var bindings []Binding
	for _, c := range contexts {
		bindings = append(bindings, ByContext(c)...)
	}
	return NewResolver(bindings)
}
