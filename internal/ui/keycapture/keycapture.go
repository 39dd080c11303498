// Package keycapture records a single key press as a shortcut key label.
package keycapture

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/keymap"
	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/popup"
	"github.com/llehouerou/phototriage/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

const (
	title = "Bir tuşa basın"
	hint  = "Esc: vazgeç"
)

// Model waits for exactly one key press. The label is tea.KeyMsg.String()
// taken verbatim, so "a", "A", "ctrl+x" and "f5" are distinct keys.
type Model struct {
	ui.Base
	done bool
}

// New creates a capture popup sized to the screen.
func New(width, height int) *Model {
	m := &Model{}
	m.SetSize(width, height)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	var res Result
	switch label := keyMsg.String(); {
	case label == "esc":
		res = Result{Canceled: true}
	case keymap.Unusable(label):
		// Owned by the application; never bindable.
		return m, nil
	default:
		res = Result{Key: label}
	}
	m.done = true
	return m, func() tea.Msg { return ActionMsg(res) }
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	return s.Title.Render(title) + "\n\n" + s.Subtle.Render(hint)
}
