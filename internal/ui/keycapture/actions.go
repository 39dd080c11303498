package keycapture

import "github.com/llehouerou/phototriage/internal/ui/action"

// Source identifies key capture results in an action.Msg.
const Source = "keycapture"

// Result carries the captured key label.
type Result struct {
	Key      string
	Canceled bool // true if the user pressed Escape
}

func (Result) ActionType() string { return "keycapture.result" }

// ActionMsg wraps a key capture action in an action.Msg.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
