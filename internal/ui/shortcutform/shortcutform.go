// Package shortcutform is the popup for creating a shortcut binding.
package shortcutform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/action"
	"github.com/llehouerou/phototriage/internal/ui/keycapture"
	"github.com/llehouerou/phototriage/internal/ui/popup"
	"github.com/llehouerou/phototriage/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

type field int

const (
	fieldKey field = iota
	fieldAction
	fieldAlbum
)

// Texts shown in the form.
const (
	title          = "Yeni kısayol"
	noKey          = "Enter ile tuş seçin"
	waitingKey     = "Bir tuşa basın…"
	albumAction    = "Albüme taşı"
	NoWriteable    = "Yazılabilir albüm bulunamadı."
	hint           = "Tab: alan · ←/→: değiştir · Enter: kaydet · Esc: vazgeç"
	labelKey       = "Tuş:   "
	labelAction    = "Eylem: "
	labelAlbum     = "Albüm: "
	selectedMarker = "▸ "
)

// Model edits a shortcut.Draft. The album selector offers only the albums
// passed to New; the chosen album's title is copied into the draft.
type Model struct {
	ui.Base
	focus     field
	key       string
	action    shortcut.Action
	albums    []api.Album
	album     int
	capture   *keycapture.Model
	err       string
	submitted bool
}

// New creates a form offering the given writeable albums.
func New(albums []api.Album, width, height int) *Model {
	m := &Model{
		action: shortcut.ActionTrash,
		albums: albums,
	}
	m.SetSize(width, height)
	return m
}

// Draft returns the binding as currently entered.
func (m *Model) Draft() shortcut.Draft {
	d := shortcut.Draft{Key: m.key, Action: m.action}
	if m.action == shortcut.ActionAlbum && len(m.albums) > 0 {
		a := m.albums[m.album]
		d.AlbumID, d.AlbumName = a.ID, a.Title
	}
	return d
}

// Capturing reports whether the form is waiting for the shortcut key.
func (m *Model) Capturing() bool {
	return m.capture != nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	switch msg := msg.(type) {
	case action.Msg:
		if res, ok := msg.Action.(keycapture.Result); ok && msg.Source == keycapture.Source {
			m.capture = nil
			if !res.Canceled {
				m.key = res.Key
				m.err = ""
			}
		}
		return m, nil
	case tea.KeyMsg:
		if m.capture != nil {
			_, cmd := m.capture.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.submitted = true
		return func() tea.Msg { return ActionMsg(Result{Canceled: true}) }
	case "tab", "down":
		m.moveFocus(1)
	case "shift+tab", "up":
		m.moveFocus(-1)
	case "left", "h":
		m.change(-1)
	case "right", "l":
		m.change(1)
	case "enter":
		if m.focus == fieldKey && m.key == "" {
			m.capture = keycapture.New(m.Width(), m.Height())
			return nil
		}
		return m.submit()
	case " ":
		if m.focus == fieldKey {
			m.capture = keycapture.New(m.Width(), m.Height())
		}
	}
	return nil
}

func (m *Model) moveFocus(delta int) {
	n := 2
	if m.action == shortcut.ActionAlbum {
		n = 3
	}
	m.focus = field((int(m.focus) + delta + n) % n)
}

func (m *Model) change(delta int) {
	switch m.focus {
	case fieldAction:
		if m.action == shortcut.ActionTrash {
			m.action = shortcut.ActionAlbum
		} else {
			m.action = shortcut.ActionTrash
		}
	case fieldAlbum:
		if n := len(m.albums); n > 0 {
			m.album = (m.album + delta + n) % n
		}
	case fieldKey:
	}
	m.err = ""
}

func (m *Model) submit() tea.Cmd {
	d := m.Draft()
	if err := d.Validate(); err != nil {
		var verr *shortcut.ValidationError
		if errors.As(err, &verr) {
			m.err = verr.Message
		}
		return nil
	}
	m.submitted = true
	return func() tea.Msg { return ActionMsg(Result{Draft: d}) }
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	keyText := s.Muted.Render(noKey)
	switch {
	case m.capture != nil:
		keyText = s.Warning.Render(waitingKey)
	case m.key != "":
		keyText = s.Key.Render(m.key)
	}

	actionText := shortcut.TrashLabel
	if m.action == shortcut.ActionAlbum {
		actionText = albumAction
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(title) + "\n\n")
	b.WriteString(m.row(fieldKey, labelKey, keyText) + "\n")
	b.WriteString(m.row(fieldAction, labelAction, "‹ "+actionText+" ›") + "\n")
	if m.action == shortcut.ActionAlbum {
		albumText := s.Error.Render(NoWriteable)
		if len(m.albums) > 0 {
			albumText = "‹ " + s.Album.Render(m.albums[m.album].Title) + " ›"
		}
		b.WriteString(m.row(fieldAlbum, labelAlbum, albumText) + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + s.Error.Render(m.err) + "\n")
	}
	b.WriteString("\n" + s.Subtle.Render(hint))
	return b.String()
}

func (m *Model) row(f field, label, value string) string {
	s := styles.T().S()
	if m.focus == f {
		return s.Key.Render(selectedMarker) + s.Title.Render(label) + value
	}
	return "  " + s.Muted.Render(label) + value
}
