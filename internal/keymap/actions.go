// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionSwitchFocus   Action = "switch_focus"
	ActionSearch        Action = "search"
	ActionHome          Action = "home"
	ActionToggleLyrics  Action = "toggle_lyrics"
	ActionToggleHistory Action = "toggle_history"
	ActionHelp          Action = "help"

	// Playback actions
	ActionPlayPause  Action = "play_pause"
	ActionNextTrack  Action = "next_track"
	ActionPrevTrack  Action = "prev_track"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Track list actions
	ActionSelect   Action = "select"    // enter - play now
	ActionAdd      Action = "add"       // a - add to queue
	ActionPlayNext Action = "play_next" // n - play after the current track

	// Lyrics
	ActionFollowLyrics Action = "follow_lyrics" // c - re-center on the current line

	// Queue-specific actions
	ActionDelete       Action = "delete"         // d/delete
	ActionClear        Action = "clear"          // c
	ActionMoveItemUp   Action = "move_item_up"   // K
	ActionMoveItemDown Action = "move_item_down" // J
)
