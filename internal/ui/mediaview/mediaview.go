// Package mediaview renders the item under triage.
package mediaview

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/phototriage/internal/icons"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/ui"
	"github.com/llehouerou/phototriage/internal/ui/render"
	"github.com/llehouerou/phototriage/internal/ui/styles"
)

// Status texts.
const (
	StatusLoading     = "Yükleniyor…"
	StatusDispatching = "Uygulanıyor…"
	StatusEnded       = "Oturum tamamlandı. Çıkmak için Esc."
	StatusRetry       = "Yeniden denemek için r tuşuna basın."
	noBindings        = "Kısayol yok: önce ayarlardan bir kısayol ekleyin."
)

// Rows inside the panel border above the image box: title, blank,
// caption, details, blank.
const imageTop = 5

// Rows inside the panel border besides the image box: the rows above it,
// then blank, URL and legend.
const chromeRows = imageTop + 3

// Model shows one media item with its caption, progress and the legend of
// bound keys.
type Model struct {
	ui.Base
	state  session.State
	show   session.Show
	shown  bool
	info   string
	image  string
	legend []shortcut.Binding
	now    func() time.Time
}

// New creates an empty view.
func New() Model {
	return Model{now: time.Now}
}

// SetBindings sets the keys listed in the legend.
func (m *Model) SetBindings(bindings []shortcut.Binding) {
	m.legend = slices.SortedFunc(slices.Values(bindings), func(a, b shortcut.Binding) int {
		return strings.Compare(a.Key, b.Key)
	})
}

// SetState records the session state for the status line.
func (m *Model) SetState(s session.State) {
	m.state = s
}

// Show replaces the displayed item.
func (m *Model) Show(s session.Show) {
	m.show = s
	m.shown = true
	m.info = ""
	m.image = ""
}

// Clear removes the displayed item.
func (m *Model) Clear() {
	m.show = session.Show{}
	m.shown = false
	m.info = ""
	m.image = ""
}

// Current returns the displayed item id, or "".
func (m Model) Current() string {
	if !m.shown {
		return ""
	}
	return m.show.Item.ID
}

// SetImage sets the blank block reserving the preview area and a short
// description of the image. An empty placeholder shows the URL instead.
func (m *Model) SetImage(placeholder, info string) {
	m.image = placeholder
	m.info = info
}

// ImageSize returns the preview box in cells for the current size.
func (m Model) ImageSize() (width, height int) {
	return max(m.Width()-ui.BorderHeight, 0), max(m.Height()-ui.BorderHeight-chromeRows, 0)
}

// ImageOrigin returns the preview box's top-left cell relative to the
// panel's top-left corner.
func (m Model) ImageOrigin() (row, col int) {
	return 1 + imageTop, 1
}

func (m Model) View() string {
	s := styles.T().S()
	width, _ := m.ImageSize()

	lines := make([]string, 0, m.Height())
	lines = append(lines, m.title(), "")

	if m.shown {
		item := m.show.Item
		lines = append(lines, s.Title.Render(render.Truncate(item.Caption(), width)))
		details := item.Age(m.now())
		if m.info != "" {
			details = strings.TrimPrefix(details+" · "+m.info, " · ")
		}
		lines = append(lines, s.Muted.Render(render.Truncate(details, width)), "")
		if m.image != "" {
			lines = append(lines, strings.Split(m.image, "\n")...)
		}
		lines = append(lines, "", s.Subtle.Render(render.Truncate(item.DisplayURL(), width)))
	} else {
		lines = append(lines, s.Muted.Render(m.status()))
	}

	innerH := max(m.Height()-ui.BorderHeight, 0)
	for len(lines) < innerH-1 {
		lines = append(lines, "")
	}
	lines = append(lines, m.legendLine(width))

	return styles.PanelStyle(true).
		Width(width).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

func (m Model) title() string {
	s := styles.T().S()
	label := strings.ToUpper(m.kind())
	if m.shown {
		label = icons.FormatMedia(m.show.Item.IsVideo(), label)
	}
	parts := []string{s.Title.Render(label)}
	if p := m.show.Progress(); m.shown && p != "" {
		parts = append(parts, s.Base.Render(p))
	}
	if m.shown {
		if st := m.status(); st != "" {
			parts = append(parts, s.Warning.Render(st))
		}
	}
	return strings.Join(parts, s.Subtle.Render(" │ "))
}

func (m Model) kind() string {
	if !m.shown {
		return "medya"
	}
	if m.show.Item.IsVideo() {
		return "video"
	}
	return "fotoğraf"
}

func (m Model) status() string {
	switch m.state {
	case session.Loading:
		return StatusLoading
	case session.Dispatching:
		return StatusDispatching
	case session.Ended:
		return StatusEnded
	case session.Idle:
		return StatusRetry
	case session.Displaying:
	}
	return ""
}

func (m Model) legendLine(width int) string {
	s := styles.T().S()
	if len(m.legend) == 0 {
		return s.Error.Render(noBindings)
	}
	parts := make([]string, 0, len(m.legend))
	used := 0
	for _, b := range m.legend {
		plain := b.Key + " " + b.Destination()
		if used > 0 && !render.Fits(plain, width-used-3) {
			parts = append(parts, s.Subtle.Render("…"))
			break
		}
		used += lipgloss.Width(plain) + 3
		parts = append(parts, s.Key.Render(b.Key)+" "+s.Muted.Render(b.Destination()))
	}
	return strings.Join(parts, s.Subtle.Render(" · "))
}
