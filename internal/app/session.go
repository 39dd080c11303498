// internal/app/session.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/phototriage/internal/errmsg"
	"github.com/llehouerou/phototriage/internal/journal"
	"github.com/llehouerou/phototriage/internal/notify"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/ui/headerbar"
	"github.com/llehouerou/phototriage/internal/ui/toast"
)

// startSession opens the session view and reloads the shortcuts. The
// machine starts once they arrive.
func (m *Model) startSession() tea.Cmd {
	m.endJournal()
	m.gen++
	m.view = ViewSession
	m.machine = session.Machine{}
	m.counts = nil
	m.mediaView.Clear()
	m.mediaView.SetState(session.Loading)
	return tea.Batch(m.clearImage(), m.loadSettingsCmd(true))
}

// beginSession starts the machine on a snapshot of the current shortcuts.
// Later registry changes do not reach a running session.
func (m *Model) beginSession() tea.Cmd {
	m.machine = session.New(m.mode, m.registry.Snapshot(), m.rand)
	m.mediaView.SetBindings(m.registry.Bindings())

	var cmds []tea.Cmd
	if m.journal != nil {
		id, err := m.journal.BeginSession(m.mode.String())
		if err != nil {
			log.Error().Err(err).Msg("begin journal session")
			cmds = append(cmds, m.toast.Show(toast.Error, errmsg.User(errmsg.OpJournalOpen, err)))
		} else {
			m.journalID = id
			m.counts = &headerbar.Counts{}
		}
	}

	log.Info().
		Str("mode", m.mode.String()).
		Int("ids", len(m.ids)).
		Int("keys", m.registry.Len()).
		Str("journal", m.journalID).
		Msg("session started")
	cmds = append(cmds, m.apply(session.Start{IDs: m.ids}))
	return tea.Batch(cmds...)
}

// leaveSession returns to the shortcut list. Replies still in flight for
// the left session are dropped when they arrive.
func (m *Model) leaveSession() tea.Cmd {
	log.Info().Str("state", m.machine.State().String()).Int("applied", m.machine.Applied()).Msg("session left")
	m.endJournal()
	m.gen++
	m.view = ViewSettings
	m.machine = session.Machine{}
	m.counts = nil
	m.mediaView.Clear()
	m.list.SetBindings(m.registry.Bindings())
	return m.clearImage()
}

// apply feeds ev to the machine and carries out the effects it returns.
func (m *Model) apply(ev session.Event) tea.Cmd {
	var effects []session.Effect
	from := m.machine.State()
	m.machine, effects = m.machine.Apply(ev)
	m.mediaView.SetState(m.machine.State())
	if to := m.machine.State(); to != from {
		log.Debug().Str("from", from.String()).Str("to", to.String()).Int("effects", len(effects)).Msg("session transition")
	}

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		cmds = append(cmds, m.runEffect(e))
	}
	return tea.Batch(cmds...)
}

func (m *Model) runEffect(e session.Effect) tea.Cmd {
	switch e := e.(type) {
	case session.Fetch:
		return m.fetchCmd(e)
	case session.Dispatch:
		log.Info().
			Str("media", e.Item.ID).
			Str("key", e.Binding.Key).
			Str("action", string(e.Binding.Action)).
			Str("album", e.Binding.AlbumID).
			Msg("dispatch")
		return m.dispatchCmd(e)
	case session.Show:
		return m.showItem(e)
	case session.Notify:
		return m.notice(e)
	case session.End:
		log.Info().Int("applied", e.Applied).Msg("session ended")
		m.mediaView.Clear()
		m.endJournal()
		return m.clearImage()
	}
	return nil
}

func (m *Model) showItem(s session.Show) tea.Cmd {
	m.mediaView.Show(s)
	cmd := m.clearImage()
	if m.preview == nil || s.Item.IsVideo() {
		return cmd
	}
	return tea.Batch(cmd, m.previewCmd(s.Item))
}

func (m *Model) notice(n session.Notify) tea.Cmd {
	switch n.Kind {
	case session.NoticeError:
		log.Warn().Err(n.Err).Str("notice", n.Message).Msg("session error")
		return m.toast.Show(toast.Error, n.Message)
	case session.NoticeCompleted:
		return tea.Batch(m.toast.Show(toast.Completed, n.Message), m.desktopNotifyCmd(n.Message))
	case session.NoticeSuccess:
	}
	return m.toast.Show(toast.Success, n.Message)
}

// desktopNotifyCmd announces a finished session outside the terminal.
func (m *Model) desktopNotifyCmd(message string) tea.Cmd {
	var trashed, moved int
	if m.counts != nil {
		trashed, moved = m.counts.Trashed, m.counts.Moved
	}
	n := notify.Completion(message, m.machine.Applied(), trashed, moved)
	notifier := m.notifier
	return func() tea.Msg {
		if _, err := notifier.Notify(n); err != nil {
			log.Warn().Err(err).Msg("desktop notification")
		}
		return nil
	}
}

// handleDispatched records a successful action and moves the session on.
// An action applied after its session was left is still recorded, against
// the journal session it was sent in.
func (m *Model) handleDispatched(msg DispatchedMsg) tea.Cmd {
	d := msg.Dispatch
	if msg.Gen != m.gen || m.view != ViewSession {
		if msg.Err == nil {
			log.Info().Str("media", d.Item.ID).Str("action", string(d.Binding.Action)).Msg("dispatch applied after leaving")
			if err := m.record(msg.JournalID, d); err != nil {
				log.Error().Err(err).Msg(errmsg.FormatWith(errmsg.OpJournalRecord, d.Item.ID, err))
			}
		}
		return nil
	}
	if msg.Err != nil {
		log.Warn().Err(msg.Err).Str("key", d.Binding.Key).Msg(errmsg.FormatWith(errmsg.OpAction, d.Item.ID, msg.Err))
		return m.apply(session.Dispatched{Err: msg.Err})
	}

	log.Info().Str("media", d.Item.ID).Str("action", string(d.Binding.Action)).Msg("dispatch applied")
	recordErr := m.record(msg.JournalID, d)
	if recordErr == nil && msg.JournalID == m.journalID {
		recordErr = m.refreshCounts()
	}
	cmd := m.apply(session.Dispatched{})
	if recordErr != nil {
		log.Error().Err(recordErr).Msg(errmsg.FormatWith(errmsg.OpJournalRecord, d.Item.ID, recordErr))
		return tea.Batch(cmd, m.toast.Show(toast.Error, errmsg.User(errmsg.OpJournalRecord, recordErr)))
	}
	return cmd
}

// record appends d to the journal under the given journal session.
func (m *Model) record(journalID string, d session.Dispatch) error {
	if m.journal == nil || journalID == "" {
		return nil
	}
	return m.journal.Record(journal.Entry{
		SessionID: journalID,
		MediaID:   d.Item.ID,
		Filename:  d.Item.Filename,
		Action:    string(d.Binding.Action),
		AlbumID:   d.Binding.AlbumID,
		AlbumName: d.Binding.AlbumName,
	})
}

// refreshCounts reloads the header counts of the running journal session.
func (m *Model) refreshCounts() error {
	if m.journal == nil || m.journalID == "" {
		return nil
	}
	totals, err := m.journal.Totals(m.journalID)
	if err != nil {
		return err
	}
	m.counts = &headerbar.Counts{Trashed: totals.Trashed, Moved: totals.Moved}
	return nil
}

// endJournal closes the running journal session, if any. Actions still in
// flight may record against it afterwards.
func (m *Model) endJournal() {
	if m.journal == nil || m.journalID == "" {
		return
	}
	if err := m.journal.EndSession(m.journalID); err != nil {
		log.Warn().Err(err).Str("journal", m.journalID).Msg("end journal session")
	}
	m.journalID = ""
}

// handlePreview draws a downloaded preview if its item is still shown.
func (m *Model) handlePreview(msg PreviewLoadedMsg) tea.Cmd {
	if msg.Gen != m.gen || m.preview == nil || m.mediaView.Current() != msg.MediaID {
		return nil
	}
	if msg.Err != nil {
		log.Warn().Err(msg.Err).Str("media", msg.MediaID).Msg("preview download")
		m.mediaView.SetImage("", errmsg.User(errmsg.OpPreviewLoad, msg.Err))
		return nil
	}
	out, err := m.preview.Load(msg.MediaID, msg.Data)
	cmd := m.queueImage(out)
	if err != nil {
		log.Warn().Err(err).Str("media", msg.MediaID).Msg("preview decode")
		m.mediaView.SetImage("", errmsg.User(errmsg.OpPreviewLoad, err))
		return cmd
	}
	m.mediaView.SetImage(m.preview.Placeholder(), m.preview.Info())
	return cmd
}

// queueImage adds terminal image output to the next frames and schedules
// its release.
func (m *Model) queueImage(out string) tea.Cmd {
	if out == "" {
		return nil
	}
	m.imageOut += out
	m.imageSeq++
	return imageFlushCmd(m.imageSeq)
}

// clearImage frees the displayed preview.
func (m *Model) clearImage() tea.Cmd {
	if m.preview == nil {
		return nil
	}
	return m.queueImage(m.preview.Clear())
}
