// internal/app/messages.go
package app

import (
	"github.com/llehouerou/phototriage/internal/media"
	"github.com/llehouerou/phototriage/internal/session"
)

// View names the active screen.
type View string

const (
	ViewSettings View = "settings"
	ViewSession  View = "session"
)

// SettingsLoadedMsg reports a registry reload. Starting is set when the load
// opens the session of generation Gen.
type SettingsLoadedMsg struct {
	Gen      int
	Err      error
	Starting bool
}

// ShortcutSavedMsg reports the result of saving a shortcut.
type ShortcutSavedMsg struct{ Err error }

// ShortcutDeletedMsg reports the result of deleting a shortcut.
type ShortcutDeletedMsg struct{ Err error }

// Session-scoped messages carry the generation of the session that issued
// them. Results from a session the user already left are dropped.

// MediaFetchedMsg carries the result of a session.Fetch effect.
type MediaFetchedMsg struct {
	Gen   int
	Items []media.Item
	Err   error
}

// DispatchedMsg carries the result of a session.Dispatch effect.
// JournalID is the journal session running when the action was sent.
type DispatchedMsg struct {
	Gen       int
	JournalID string
	Dispatch  session.Dispatch
	Err       error
}

// PreviewLoadedMsg carries downloaded preview bytes for a media item.
type PreviewLoadedMsg struct {
	Gen     int
	MediaID string
	Data    []byte
	Err     error
}

// ImageFlushedMsg is sent once pending image output has had time to reach
// the terminal with a rendered frame.
type ImageFlushedMsg struct{ Seq int }
