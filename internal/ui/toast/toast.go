// Package toast shows one transient status message at a time.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/phototriage/internal/ui/styles"
)

// Kind selects the toast style.
type Kind int

const (
	Success Kind = iota
	Error
	Completed
)

// CompletedDuration is how long the session completion notice stays up.
const CompletedDuration = 5 * time.Second

// ExpireMsg dismisses the toast it was scheduled for.
type ExpireMsg struct{ seq int }

// Model holds the visible message. Each Show bumps a sequence number so the
// expiry tick of a replaced message leaves the newer one in place.
type Model struct {
	message  string
	kind     Kind
	seq      int
	duration time.Duration
}

// New creates a toast model whose messages last d, except Completed
// messages which last CompletedDuration.
func New(d time.Duration) Model {
	return Model{duration: d}
}

// Show replaces the current message and returns the command expiring it.
func (m *Model) Show(kind Kind, message string) tea.Cmd {
	m.seq++
	m.kind = kind
	m.message = message

	d := m.duration
	if kind == Completed {
		d = CompletedDuration
	}
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg { return ExpireMsg{seq: seq} })
}

// Update clears the message if msg expires the current one.
func (m *Model) Update(msg tea.Msg) {
	if e, ok := msg.(ExpireMsg); ok && e.seq == m.seq {
		m.message = ""
	}
}

// Message returns the visible text, or "".
func (m Model) Message() string {
	return m.message
}

func (m Model) View() string {
	if m.message == "" {
		return ""
	}
	s := styles.T().S()
	switch m.kind {
	case Error:
		return s.ToastError.Render("✗ " + m.message)
	case Completed:
		return s.ToastDone.Render("★ " + m.message)
	case Success:
	}
	return s.ToastSuccess.Render("✓ " + m.message)
}
