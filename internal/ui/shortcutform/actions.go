package shortcutform

import (
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/ui/action"
)

// Source identifies form results in an action.Msg.
const Source = "shortcutform"

// Result is the outcome of the form. Draft is valid unless Canceled.
type Result struct {
	Draft    shortcut.Draft
	Canceled bool
}

func (Result) ActionType() string { return "shortcutform.result" }

// ActionMsg wraps a form action in an action.Msg.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
