package helpbindings

import "github.com/llehouerou/phototriage/internal/ui/action"

// Source identifies help popup results in an action.Msg.
const Source = "helpbindings"

// Close is sent when the user dismisses the popup.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

// ActionMsg wraps a help popup action in an action.Msg.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
