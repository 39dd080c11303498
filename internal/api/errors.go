package api

import (
	"fmt"
	"net/http"
)

// LoadError is returned when settings or media could not be fetched,
// either because the request failed or the backend answered non-OK.
type LoadError struct {
	What    string // "settings", "selected media", "random media"
	Status  int    // 0 when no response was received
	Message string // backend-supplied error text, if any
	Err     error  // transport or decoding error, if any
}

func (e *LoadError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("load %s: %v", e.What, e.Err)
	case e.Message != "":
		return fmt.Sprintf("load %s: %s (%d)", e.What, e.Message, e.Status)
	default:
		return fmt.Sprintf("load %s: %s", e.What, http.StatusText(e.Status))
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// ActionError is returned when the backend rejected or failed a mutation:
// applying an action to a media item, saving or deleting a shortcut.
type ActionError struct {
	Op      string // "action", "save shortcut", "delete shortcut"
	Status  int
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
	default:
		return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.Status))
	}
}

func (e *ActionError) Unwrap() error { return e.Err }

// BackendMessage returns the backend's own error text, or empty.
func (e *ActionError) BackendMessage() string { return e.Message }

// BackendMessage returns the backend's own error text, or empty.
func (e *LoadError) BackendMessage() string { return e.Message }
