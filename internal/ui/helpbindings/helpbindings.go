// Package helpbindings is the popup listing application keys for a view.
package helpbindings

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/keymap"
	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/popup"
	"github.com/llehouerou/phototriage/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

const (
	title = "Tuşlar"
	hint  = "Esc/?: kapat"
)

// Model shows the full help of one keymap context.
type Model struct {
	ui.Base
	context string
	help    help.Model
}

// New creates the popup for a keymap context.
func New(context string) *Model {
	h := help.New()
	h.ShowAll = true
	return &Model{context: context, help: h}
}

func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.help.Width = width
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "?", "q", "enter":
			return m, func() tea.Msg { return ActionMsg(Close{}) }
		}
	}
	return m, nil
}

func (m *Model) View() string {
	s := styles.T().S()
	return s.Title.Render(title) + "\n\n" +
		m.help.View(keymap.Help(m.context)) + "\n\n" +
		s.Subtle.Render(hint)
}
