package confirm

import "github.com/llehouerou/phototriage/internal/ui/action"

// Source identifies confirm results in an action.Msg.
const Source = "confirm"

// Result is the answer to a confirmation prompt.
type Result struct {
	Confirmed bool
	Context   any // passed through from Show
}

func (Result) ActionType() string { return "confirm.result" }

// ActionMsg wraps a confirm action in an action.Msg.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
