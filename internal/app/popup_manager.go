// internal/app/popup_manager.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/ui/action"
	"github.com/llehouerou/phototriage/internal/ui/confirm"
	"github.com/llehouerou/phototriage/internal/ui/helpbindings"
	"github.com/llehouerou/phototriage/internal/ui/keycapture"
	"github.com/llehouerou/phototriage/internal/ui/popup"
	"github.com/llehouerou/phototriage/internal/ui/shortcutform"
)

// PopupType identifies which popup is currently active.
type PopupType int

const (
	PopupNone PopupType = iota
	PopupHelp
	PopupConfirm
	PopupShortcutForm
)

// PopupController manages modal popups and overlays.
type PopupController interface {
	SetSize(width, height int)

	ActivePopup() PopupType
	Hide(t PopupType)

	ShowHelp(context string)
	ShowConfirm(title, message string, context any)
	ShowShortcutForm(albums []api.Album)

	HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	HandleAction(msg action.Msg) (handled bool, cmd tea.Cmd)

	RenderOverlay(base string) string
}

// PopupManager manages all modal popups and overlays.
type PopupManager struct {
	help    *helpbindings.Model
	confirm confirm.Model
	form    *shortcutform.Model

	width  int
	height int
}

// NewPopupManager creates a PopupManager with no popup shown.
func NewPopupManager() PopupManager {
	return PopupManager{confirm: confirm.New()}
}

// SetSize updates the dimensions for popup rendering.
func (p *PopupManager) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.help != nil {
		p.help.SetSize(width, height)
	}
	if p.form != nil {
		p.form.SetSize(width, height)
	}
}

// ActivePopup returns which popup is currently active (if any).
func (p *PopupManager) ActivePopup() PopupType {
	// Help may open over the others.
	if p.help != nil {
		return PopupHelp
	}
	if p.confirm.Active() {
		return PopupConfirm
	}
	if p.form != nil {
		return PopupShortcutForm
	}
	return PopupNone
}

// Hide closes the given popup.
func (p *PopupManager) Hide(t PopupType) {
	switch t {
	case PopupHelp:
		p.help = nil
	case PopupConfirm:
		p.confirm = confirm.New()
	case PopupShortcutForm:
		p.form = nil
	case PopupNone:
	}
}

// ShowHelp displays the bindings of a keymap context.
func (p *PopupManager) ShowHelp(context string) {
	p.help = helpbindings.New(context)
	p.help.SetSize(p.width, p.height)
}

// ShowConfirm displays a confirmation dialog.
func (p *PopupManager) ShowConfirm(title, message string, context any) {
	p.confirm.Show(title, message, context, p.width, p.height)
}

// ShowShortcutForm opens the new shortcut form offering albums.
func (p *PopupManager) ShowShortcutForm(albums []api.Album) {
	p.form = shortcutform.New(albums, p.width, p.height)
}

// HandleKey routes key events to the active popup.
// Returns (handled, cmd) where handled is true if a popup consumed the key.
func (p *PopupManager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	var cmd tea.Cmd
	switch p.ActivePopup() {
	case PopupHelp:
		_, cmd = p.help.Update(msg)
	case PopupConfirm:
		_, cmd = p.confirm.Update(msg)
	case PopupShortcutForm:
		_, cmd = p.form.Update(msg)
	case PopupNone:
		return false, nil
	}
	return true, cmd
}

// HandleAction delivers popup results. Captured keys go back to the form
// that asked for them; results that close a popup hide it and are left
// for the caller to act on (handled is false).
func (p *PopupManager) HandleAction(msg action.Msg) (bool, tea.Cmd) {
	switch msg.Source {
	case keycapture.Source:
		if p.form == nil {
			return true, nil
		}
		_, cmd := p.form.Update(msg)
		return true, cmd
	case helpbindings.Source:
		p.Hide(PopupHelp)
		return true, nil
	case shortcutform.Source:
		p.Hide(PopupShortcutForm)
	case confirm.Source:
		p.Hide(PopupConfirm)
	}
	return false, nil
}

// RenderOverlay renders the active popup on top of the base view.
func (p *PopupManager) RenderOverlay(base string) string {
	var content string
	size := popup.SizeAuto
	switch p.ActivePopup() {
	case PopupHelp:
		content = p.help.View()
	case PopupConfirm:
		content = p.confirm.View()
	case PopupShortcutForm:
		content = p.form.View()
		size = popup.SizeForm
	case PopupNone:
		return base
	}
	if content == "" {
		return base
	}
	return popup.Compose(base, popup.RenderBordered(content, p.width, p.height, size), p.width)
}
