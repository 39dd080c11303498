// internal/app/update.go
package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/errmsg"
	"github.com/llehouerou/phototriage/internal/keymap"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/action"
	"github.com/llehouerou/phototriage/internal/ui/confirm"
	"github.com/llehouerou/phototriage/internal/ui/headerbar"
	"github.com/llehouerou/phototriage/internal/ui/shortcutform"
	"github.com/llehouerou/phototriage/internal/ui/toast"
)

// Texts of the shortcut list.
const (
	confirmDeleteTitle   = "Kısayolu sil"
	confirmDeleteMessage = "Bu kısayolu silmek istediğinizden emin misiniz?"
	msgShortcutSaved     = "Kısayol başarıyla kaydedildi."
	msgShortcutDeleted   = "Kısayol silindi."
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case action.Msg:
		return m, m.handleAction(msg)
	case toast.ExpireMsg:
		m.toast.Update(msg)
		return m, nil
	case ImageFlushedMsg:
		if msg.Seq == m.imageSeq {
			m.imageOut = ""
		}
		return m, nil
	case SettingsLoadedMsg:
		return m, m.handleSettingsLoaded(msg)
	case ShortcutSavedMsg:
		return m, m.handleMutation(msg.Err, errmsg.OpShortcutSave, msgShortcutSaved)
	case ShortcutDeletedMsg:
		return m, m.handleMutation(msg.Err, errmsg.OpShortcutDelete, msgShortcutDeleted)
	case MediaFetchedMsg:
		if msg.Gen != m.gen || m.view != ViewSession {
			return m, nil
		}
		return m, m.apply(session.Fetched{Items: msg.Items, Err: msg.Err})
	case DispatchedMsg:
		return m, m.handleDispatched(msg)
	case PreviewLoadedMsg:
		return m, m.handlePreview(msg)
	}
	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width, m.height = msg.Width, msg.Height
	bodyHeight := max(msg.Height-headerbar.Height-ui.StatusHeight, 0)
	m.list.SetSize(msg.Width, bodyHeight)
	m.mediaView.SetSize(msg.Width, bodyHeight)
	m.popups.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if m.preview == nil {
		return nil
	}
	cmd := m.queueImage(m.preview.SetSize(m.mediaView.ImageSize()))
	if id := m.mediaView.Current(); id != "" && m.preview.Shows(id) {
		m.mediaView.SetImage(m.preview.Placeholder(), m.preview.Info())
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if handled, cmd := m.popups.HandleKey(msg); handled {
		return cmd
	}
	if m.view == ViewSession {
		return m.handleSessionKey(msg)
	}
	return m.handleSettingsKey(msg)
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch m.settings.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionHelp:
		m.popups.ShowHelp(keymap.ContextSettings)
	case keymap.ActionNewShortcut:
		m.popups.ShowShortcutForm(m.registry.WriteableAlbums())
	case keymap.ActionDeleteShortcut:
		if b, ok := m.list.Selected(); ok {
			m.popups.ShowConfirm(confirmDeleteTitle, confirmDeleteMessage, b.ID)
		}
	case keymap.ActionReload:
		return m.loadSettingsCmd(false)
	case keymap.ActionStartSession:
		return m.startSession()
	default:
		m.list.Update(msg)
	}
	return nil
}

// handleSessionKey gives bound keys to the session first. Only the keys it
// does not bind reach the application keymap.
func (m *Model) handleSessionKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.machine.Binds(key) {
		return m.apply(session.KeyPressed{Key: key})
	}
	switch m.sessKeys.Resolve(key) {
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionLeaveSession:
		return m.leaveSession()
	case keymap.ActionRetry:
		if m.machine.Mode() == session.RandomRefill && m.machine.State() == session.Idle {
			return m.apply(session.Start{})
		}
	}
	return nil
}

func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	if handled, cmd := m.popups.HandleAction(msg); handled {
		return cmd
	}
	switch a := msg.Action.(type) {
	case shortcutform.Result:
		if a.Canceled {
			return nil
		}
		return m.saveShortcutCmd(a.Draft)
	case confirm.Result:
		id, ok := a.Context.(int64)
		if !a.Confirmed || !ok {
			return nil
		}
		return m.deleteShortcutCmd(id)
	}
	return nil
}

func (m *Model) handleSettingsLoaded(msg SettingsLoadedMsg) tea.Cmd {
	var cmd tea.Cmd
	m.offline = msg.Err != nil
	if msg.Err != nil {
		cmd = m.toast.Show(toast.Error, errmsg.User(errmsg.OpSettingsLoad, msg.Err))
	}
	m.list.SetBindings(m.registry.Bindings())

	if msg.Starting && msg.Gen == m.gen && m.view == ViewSession {
		return tea.Batch(cmd, m.beginSession())
	}
	return cmd
}

// handleMutation reports a save or delete. Both reload the shortcuts on
// success; a failed reload is reported as a settings load failure.
func (m *Model) handleMutation(err error, op errmsg.Op, success string) tea.Cmd {
	if err != nil {
		var loadErr *api.LoadError
		if errors.As(err, &loadErr) {
			m.offline = true
			op = errmsg.OpSettingsLoad
		}
		log.Warn().Err(err).Str("op", string(op)).Msg("shortcut change failed")
		return m.toast.Show(toast.Error, errmsg.User(op, err))
	}
	m.offline = false
	m.list.SetBindings(m.registry.Bindings())
	return m.toast.Show(toast.Success, success)
}

// quit closes the running journal session and exits.
func (m *Model) quit() tea.Cmd {
	m.endJournal()
	return tea.Quit
}
