package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component drawn over the current view.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content without border or centering.
	View() string

	// SetSize sets the screen dimensions the popup is centered in.
	SetSize(width, height int)
}
