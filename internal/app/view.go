// internal/app/view.go
package app

import (
	"strings"

	"github.com/llehouerou/phototriage/internal/keymap"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/ui/headerbar"
)

// View implements tea.Model.
func (m Model) View() string {
	// Can't render before we know terminal size
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(headerbar.State{
		View:    string(m.view),
		Mode:    m.modeLabel(),
		Counts:  m.counts,
		Offline: m.offline,
	}, m.width)

	context := keymap.ContextSettings
	body := m.list.View()
	if m.view == ViewSession {
		context = keymap.ContextSession
		body = m.mediaView.View()
	}

	view := strings.Join([]string{
		header,
		body,
		m.toast.View(),
		m.help.View(keymap.Help(context)),
	}, "\n")

	view = m.popups.RenderOverlay(view)

	// Ensure view is exactly terminal height (pad or truncate if needed)
	view = enforceHeight(view, m.height)

	// Image output rides in front of the frame; the placement goes last so
	// the cursor is restored after drawing.
	if m.imageOut != "" {
		view = m.imageOut + view
	}
	return view + m.imagePlacement()
}

func (m Model) modeLabel() string {
	if m.view != ViewSession {
		return ""
	}
	if m.mode == session.RandomRefill {
		return "rastgele"
	}
	return "sıralı"
}

// imagePlacement returns the command drawing the preview of the shown
// item, or "" when there is none.
func (m Model) imagePlacement() string {
	if m.view != ViewSession || m.preview == nil || m.popups.ActivePopup() != PopupNone {
		return ""
	}
	id := m.mediaView.Current()
	if id == "" || !m.preview.Shows(id) {
		return ""
	}
	row, col := m.mediaView.ImageOrigin()
	// 1-based terminal cells; the media panel sits right below the header.
	return m.preview.Placement(headerbar.Height+row+1, col+1)
}

// enforceHeight pads or truncates view to exactly height lines.
func enforceHeight(view string, height int) string {
	lines := strings.Split(view, "\n")
	switch {
	case len(lines) == height:
		return view
	case len(lines) < height:
		lines = append(lines, make([]string, height-len(lines))...)
	default:
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
