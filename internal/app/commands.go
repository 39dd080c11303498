// internal/app/commands.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/phototriage/internal/media"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/shortcut"
)

// imageFlushDelay outlasts a few frames of the bubbletea renderer.
const imageFlushDelay = 100 * time.Millisecond

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

// loadSettingsCmd reloads the registry from the backend.
func (m Model) loadSettingsCmd(starting bool) tea.Cmd {
	registry, gen := m.registry, m.gen
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return SettingsLoadedMsg{Gen: gen, Err: registry.Load(ctx), Starting: starting}
	}
}

// saveShortcutCmd stores a draft; the registry reloads on success.
func (m Model) saveShortcutCmd(d shortcut.Draft) tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return ShortcutSavedMsg{Err: registry.Save(ctx, d)}
	}
}

// deleteShortcutCmd removes a binding by backend id.
func (m Model) deleteShortcutCmd(id int64) tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return ShortcutDeletedMsg{Err: registry.Delete(ctx, id)}
	}
}

// fetchCmd carries out a session.Fetch effect.
func (m Model) fetchCmd(f session.Fetch) tea.Cmd {
	src, gen := m.media, m.gen
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		var (
			items []media.Item
			err   error
		)
		if f.IDs == nil {
			items, err = src.RandomMedia(ctx)
		} else {
			items, err = src.GetMedia(ctx, f.IDs)
		}
		log.Debug().Int("requested", len(f.IDs)).Int("items", len(items)).Err(err).Msg("media fetched")
		return MediaFetchedMsg{Gen: gen, Items: items, Err: err}
	}
}

// dispatchCmd carries out a session.Dispatch effect.
func (m Model) dispatchCmd(d session.Dispatch) tea.Cmd {
	src, gen, journalID := m.media, m.gen, m.journalID
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		err := src.Act(ctx, d.Request())
		return DispatchedMsg{Gen: gen, JournalID: journalID, Dispatch: d, Err: err}
	}
}

// previewCmd downloads the display image of an item.
func (m Model) previewCmd(item media.Item) tea.Cmd {
	src, gen := m.media, m.gen
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		data, err := src.Preview(ctx, item.DisplayURL())
		return PreviewLoadedMsg{Gen: gen, MediaID: item.ID, Data: data, Err: err}
	}
}

// imageFlushCmd schedules the release of pending image output.
func imageFlushCmd(seq int) tea.Cmd {
	return tea.Tick(imageFlushDelay, func(time.Time) tea.Msg {
		return ImageFlushedMsg{Seq: seq}
	})
}
