// Package shortcut holds the user's key bindings and keeps them in sync with the backend.
package shortcut

import "github.com/llehouerou/phototriage/internal/api"

// Action is what a bound key does to the current media item.
type Action string

const (
	ActionTrash Action = "trash"
	ActionAlbum Action = "album"
)

// Valid reports whether a is a recognized action.
func (a Action) Valid() bool {
	return a == ActionTrash || a == ActionAlbum
}

// TrashLabel is the destination name shown for trash bindings.
const TrashLabel = "Çöp Kutusu"

// Binding maps one key to an action. AlbumID and AlbumName are set iff
// Action is ActionAlbum. AlbumName is the album title captured when the
// binding was saved and is never re-resolved.
type Binding struct {
	ID        int64
	Key       string
	Action    Action
	AlbumID   string
	AlbumName string
}

// Destination returns the label of where the binding moves items.
func (b Binding) Destination() string {
	if b.Action == ActionAlbum {
		return b.AlbumName
	}
	return TrashLabel
}

// Describe renders the right-hand side of a binding for the settings list.
func (b Binding) Describe() string {
	if b.Action == ActionAlbum {
		return "Albüm: " + b.AlbumName
	}
	return TrashLabel
}

// ActionRequest builds the backend request applying b to a media item.
func (b Binding) ActionRequest(mediaID string) api.ActionRequest {
	req := api.ActionRequest{MediaID: mediaID, Action: string(b.Action)}
	if b.Action == ActionAlbum {
		id := b.AlbumID
		req.AlbumID = &id
	}
	return req
}

func fromAPI(s api.Shortcut) Binding {
	b := Binding{
		ID:     s.ID,
		Key:    s.Key,
		Action: Action(s.Action),
	}
	if s.AlbumID != nil {
		b.AlbumID = *s.AlbumID
	}
	if s.AlbumName != nil {
		b.AlbumName = *s.AlbumName
	}
	return b
}
