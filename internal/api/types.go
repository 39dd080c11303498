package api

import "github.com/llehouerou/phototriage/internal/media"

// Album is an album the backend knows about.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsWriteable bool   `json:"isWriteable"`
}

// Shortcut is a stored key binding as returned by GET /api/settings.
type Shortcut struct {
	ID        int64   `json:"id"`
	Key       string  `json:"key"`
	Action    string  `json:"action"`
	AlbumID   *string `json:"album_id"`
	AlbumName *string `json:"album_name"`
}

// Settings is the response of GET /api/settings.
type Settings struct {
	Albums    []Album    `json:"albums"`
	Shortcuts []Shortcut `json:"shortcuts"`
}

// ShortcutRequest is the body of POST /api/settings/shortcut.
// Album fields are null for trash bindings.
type ShortcutRequest struct {
	Key       string  `json:"key"`
	Action    string  `json:"action"`
	AlbumID   *string `json:"album_id"`
	AlbumName *string `json:"album_name"`
}

// ActionRequest is the body of POST /api/action.
// AlbumID is null unless the action targets an album.
type ActionRequest struct {
	MediaID string  `json:"mediaId"`
	Action  string  `json:"action"`
	AlbumID *string `json:"albumId"`
}

type randomMediaResponse struct {
	MediaItems []media.Item `json:"mediaItems"`
}

type getMediaRequest struct {
	MediaIDs []string `json:"mediaIds"`
}

type mediaItemResult struct {
	MediaItem *media.Item `json:"mediaItem"`
}

type getMediaResponse struct {
	MediaItemResults []mediaItemResult `json:"mediaItemResults"`
}

type errorResponse struct {
	Error string `json:"error"`
}
