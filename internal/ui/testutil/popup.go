package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/ui/action"
	"github.com/llehouerou/phototriage/internal/ui/popup"
)

// PopupHarness drives a popup with synthetic key presses and records the
// commands it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness creates a harness and captures the popup's init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	if cmd := p.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Popup returns the popup for type assertions.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

func (h *PopupHarness) SetSize(width, height int) {
	h.popup.SetSize(width, height)
}

func (h *PopupHarness) View() string {
	return h.popup.View()
}

// SendMsg delivers msg and returns the resulting command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey sends a printable key such as "x" or "ü".
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendKeyType sends a special key (enter, escape, tab, arrows, ...).
func (h *PopupHarness) SendKeyType(t tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: t})
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.SendKeyType(tea.KeyEnter) }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.SendKeyType(tea.KeyEscape) }
func (h *PopupHarness) SendTab() tea.Cmd    { return h.SendKeyType(tea.KeyTab) }
func (h *PopupHarness) SendUp() tea.Cmd     { return h.SendKeyType(tea.KeyUp) }
func (h *PopupHarness) SendDown() tea.Cmd   { return h.SendKeyType(tea.KeyDown) }
func (h *PopupHarness) SendLeft() tea.Cmd   { return h.SendKeyType(tea.KeyLeft) }
func (h *PopupHarness) SendRight() tea.Cmd  { return h.SendKeyType(tea.KeyRight) }

// Commands returns the commands collected since creation or ClearCommands.
func (h *PopupHarness) Commands() []tea.Cmd {
	return h.cmds
}

// LastCommand returns the most recent command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

func (h *PopupHarness) ClearCommands() {
	h.cmds = nil
}

// ViewContains reports whether the plain view contains substr on one line.
func (h *PopupHarness) ViewContains(substr string) bool {
	return ContainsLine(h.View(), substr)
}

// ExecuteCmd runs cmd and returns its message, or nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ActionOf runs cmd and returns the action it reports, or nil when the
// command does not produce an action.Msg.
func ActionOf(cmd tea.Cmd) action.Action {
	if msg, ok := ExecuteCmd(cmd).(action.Msg); ok {
		return msg.Action
	}
	return nil
}
