// Package shortcutlist renders the table of shortcut bindings.
package shortcutlist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/phototriage/internal/icons"
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/cursor"
	"github.com/llehouerou/phototriage/internal/ui/render"
	"github.com/llehouerou/phototriage/internal/ui/styles"
)

// Texts shown by the list.
const (
	Title = "Kısayollar"
	Empty = "Henüz bir kısayol eklenmemiş."
	arrow = " → "
)

// Model is a scrollable list of bindings with a cursor.
type Model struct {
	ui.Base
	bindings []shortcut.Binding
	cursor   cursor.Cursor
	keyWidth int
}

// New creates an empty list.
func New() Model {
	return Model{cursor: cursor.New(ui.ScrollMargin)}
}

// SetBindings replaces the listed bindings, keeping the cursor in range.
func (m *Model) SetBindings(bindings []shortcut.Binding) {
	m.bindings = bindings
	m.keyWidth = 0
	for _, b := range bindings {
		m.keyWidth = max(m.keyWidth, runewidth.StringWidth(b.Key))
	}
	m.cursor.ClampToBounds(len(bindings), m.listHeight())
}

// Len returns the number of listed bindings.
func (m Model) Len() int {
	return len(m.bindings)
}

// Selected returns the binding under the cursor.
func (m Model) Selected() (shortcut.Binding, bool) {
	if len(m.bindings) == 0 {
		return shortcut.Binding{}, false
	}
	return m.bindings[m.cursor.Pos()], true
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

// Update handles navigation keys. It reports whether msg was consumed.
func (m *Model) Update(msg tea.Msg) bool {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	return m.cursor.HandleKey(keyMsg.String(), len(m.bindings), m.listHeight())
}

// View renders the titled panel.
func (m Model) View() string {
	s := styles.T().S()
	width := max(m.Width()-ui.BorderHeight, 0)
	height := m.listHeight()

	lines := make([]string, 0, height+ui.HeaderHeight)
	lines = append(lines, s.Title.Render(Title), "")

	if len(m.bindings) == 0 {
		lines = append(lines, s.Muted.Render(Empty))
	}
	start, end := m.cursor.VisibleRange(len(m.bindings), height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(m.bindings[i], i == m.cursor.Pos(), width))
	}
	for len(lines) < height+ui.HeaderHeight {
		lines = append(lines, "")
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(b shortcut.Binding, selected bool, width int) string {
	s := styles.T().S()
	key := render.Pad(b.Key, m.keyWidth)
	plain := key + arrow + describe(b)

	if selected {
		return s.Cursor.Render(render.TruncateAndPad(plain, width))
	}
	dest := s.Base.Render(icons.FormatTrash(shortcut.TrashLabel))
	if b.Action == shortcut.ActionAlbum {
		dest = s.Muted.Render("Albüm: ") + s.Album.Render(icons.FormatAlbum(render.Sanitize(b.AlbumName)))
	}
	row := s.Key.Render(key) + s.Subtle.Render(arrow) + dest
	if !render.Fits(plain, width) {
		return render.Truncate(plain, width)
	}
	return row
}

func describe(b shortcut.Binding) string {
	if b.Action == shortcut.ActionAlbum {
		return "Albüm: " + icons.FormatAlbum(render.Sanitize(b.AlbumName))
	}
	return icons.FormatTrash(shortcut.TrashLabel)
}
