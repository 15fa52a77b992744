package confirm

import "github.com/llehouerou/ytplay/internal/ui/action"

// Source identifies confirm actions.
const Source = "confirm"

// Result is sent when the dialog closes.
type Result struct {
	Confirmed bool
	Context   any // passed through from Show
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "confirm.result" }

// ActionMsg wraps a confirm action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
