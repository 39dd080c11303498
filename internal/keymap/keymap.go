package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Contexts.
const (
	ContextGlobal   = "global"
	ContextSettings = "settings"
	ContextSession  = "session"
)

// Binding describes a single application key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // ContextGlobal, ContextSettings or ContextSession
}

// All contains every application key binding.
var All = []Binding{
	// Global
	{ActionQuit, []string{"ctrl+c"}, "Quit", ContextGlobal},

	// Settings
	{ActionQuit, []string{"q"}, "Quit", ContextSettings},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextSettings},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextSettings},
	{ActionNewShortcut, []string{"n"}, "New shortcut", ContextSettings},
	{ActionDeleteShortcut, []string{"d", "delete"}, "Delete shortcut", ContextSettings},
	{ActionReload, []string{"r"}, "Reload", ContextSettings},
	{ActionStartSession, []string{"enter"}, "Start session", ContextSettings},
	{ActionHelp, []string{"?"}, "Toggle help", ContextSettings},

	// Session. Only these keys are reserved while an item is shown; every
	// other key is available for shortcuts.
	{ActionLeaveSession, []string{"esc"}, "Leave session", ContextSession},
	{ActionRetry, []string{"r"}, "Retry", ContextSession},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContext returns the bindings active in a view: global ones plus the
// view's own. View bindings are listed last so they win in a Resolver.
func ForContext(context string) []Binding {
	return append(ByContext(ContextGlobal), ByContext(context)...)
}

// Key converts b into a bubbles key binding for the help view.
func (b Binding) Key() key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(strings.Join(b.Keys, "/"), b.Description),
	)
}

// HelpMap adapts a set of bindings to help.KeyMap.
type HelpMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// Help builds the help map for a view context.
func Help(context string) HelpMap {
	var h HelpMap
	var view, global []key.Binding
	for _, b := range ByContext(context) {
		kb := b.Key()
		view = append(view, kb)
		if b.Action != ActionMoveUp && b.Action != ActionMoveDown {
			h.short = append(h.short, kb)
		}
	}
	for _, b := range ByContext(ContextGlobal) {
		global = append(global, b.Key())
	}
	h.short = append(h.short, global...)
	h.full = [][]key.Binding{view, global}
	return h
}

func (h HelpMap) ShortHelp() []key.Binding  { return h.short }
func (h HelpMap) FullHelp() [][]key.Binding { return h.full }
