// Package confirm provides a yes/no confirmation popup.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/popup"
	"github.com/llehouerou/phototriage/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

const hint = "Enter/E: onayla · Esc/H: vazgeç"

// Model is a yes/no confirmation popup. The prompt answers once; further
// keys are ignored until Show is called again.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

// New creates an inactive confirmation model.
func New() Model {
	return Model{}
}

// Show activates the prompt. context is returned unchanged in the Result.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
	m.SetSize(width, height)
}

// Active reports whether the prompt is waiting for an answer.
func (m Model) Active() bool {
	return m.active
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.active || !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "y", "Y", "e", "E":
		return m, m.answer(true)
	case "esc", "n", "N", "h", "H":
		return m, m.answer(false)
	}
	return m, nil
}

func (m *Model) answer(confirmed bool) tea.Cmd {
	m.active = false
	res := Result{Confirmed: confirmed, Context: m.context}
	return func() tea.Msg { return ActionMsg(res) }
}

func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	return s.Title.Render(m.title) + "\n\n" +
		s.Base.Render(m.message) + "\n\n" +
		s.Subtle.Render(hint)
}
