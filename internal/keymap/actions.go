// Package keymap defines the application's own key bindings. User shortcuts
// bound to triage actions live in the shortcut package and take precedence
// during a session.
package keymap

// Action represents a user-triggerable application action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Settings view
	ActionMoveUp         Action = "move_up"
	ActionMoveDown       Action = "move_down"
	ActionNewShortcut    Action = "new_shortcut"    // n
	ActionDeleteShortcut Action = "delete_shortcut" // d/delete, asks first
	ActionReload         Action = "reload"          // r - refetch settings
	ActionStartSession   Action = "start_session"   // enter

	// Session view
	ActionLeaveSession Action = "leave_session" // esc
	ActionRetry        Action = "retry"         // r - refetch after a failed random load
)
