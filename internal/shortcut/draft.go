package shortcut

import "github.com/llehouerou/phototriage/internal/api"

// Draft is a binding being created in the settings form.
type Draft struct {
	Key       string
	Action    Action
	AlbumID   string
	AlbumName string
}

// ValidationError is returned when a draft is rejected locally, before any
// network call.
type ValidationError struct {
	Field   string // "key", "action", "album"
	Message string // user-facing text
}

func (e *ValidationError) Error() string {
	return "invalid shortcut " + e.Field + ": " + e.Message
}

// UserMessage returns the text shown to the user.
func (e *ValidationError) UserMessage() string { return e.Message }

// Validation messages.
const (
	msgKeyAndAction = "Lütfen bir tuş ve eylem seçin."
	msgAlbum        = "Lütfen bir albüm seçin."
)

// Validate checks that the draft has a key, a recognized action, and an
// album target when the action is ActionAlbum.
func (d Draft) Validate() error {
	if d.Key == "" {
		return &ValidationError{Field: "key", Message: msgKeyAndAction}
	}
	if !d.Action.Valid() {
		return &ValidationError{Field: "action", Message: msgKeyAndAction}
	}
	if d.Action == ActionAlbum && (d.AlbumID == "" || d.AlbumName == "") {
		return &ValidationError{Field: "album", Message: msgAlbum}
	}
	return nil
}

// request converts the draft into the backend payload. Album fields are
// null for trash bindings.
func (d Draft) request() api.ShortcutRequest {
	req := api.ShortcutRequest{Key: d.Key, Action: string(d.Action)}
	if d.Action == ActionAlbum {
		id, name := d.AlbumID, d.AlbumName
		req.AlbumID = &id
		req.AlbumName = &name
	}
	return req
}
