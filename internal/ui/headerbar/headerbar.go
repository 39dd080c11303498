// Package headerbar renders the one-line header above the active view.
package headerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/phototriage/internal/ui/styles"
)

// Height is the fixed height of the header bar.
const Height = 1

// Views.
const (
	ViewSettings = "settings"
	ViewSession  = "session"
)

type tab struct {
	name string
	view string
}

var tabs = []tab{
	{"Kısayollar", ViewSettings},
	{"Oturum", ViewSession},
}

// Counts are the running session's journal totals.
type Counts struct {
	Trashed int
	Moved   int
}

// State is what the header shows.
type State struct {
	View    string
	Mode    string  // session mode name
	Counts  *Counts // nil when journaling is off
	Offline bool    // settings failed to load
}

// Render returns the header for the given width.
func Render(s State, width int) string {
	if width < 20 {
		return ""
	}
	st := styles.T().S()
	sep := st.Subtle.Render(" │ ")

	parts := []string{styles.Gradient("phototriage")}
	for _, t := range tabs {
		if t.view == s.View {
			parts = append(parts, st.Key.Render(t.name))
		} else {
			parts = append(parts, st.Muted.Render(t.name))
		}
	}
	left := strings.Join(parts, sep)

	var right []string
	if s.Mode != "" {
		right = append(right, st.Subtle.Render(s.Mode))
	}
	if s.Counts != nil {
		right = append(right, st.Muted.Render(fmt.Sprintf("çöp %d · albüm %d", s.Counts.Trashed, s.Counts.Moved)))
	}
	if s.Offline {
		right = append(right, st.Error.Render("bağlantı yok"))
	}
	rightText := strings.Join(right, sep)

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + rightText
}
