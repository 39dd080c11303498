// Package media describes the photo and video items handed out by the backend.
package media

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Display suffixes appended to an item's base URL.
const (
	ImageSuffix = "=w1600-h900"
	VideoSuffix = "=dv"
)

// dateLayout matches the day.month.year form used in captions.
const dateLayout = "02.01.2006"

// Item is an immutable snapshot of a media item. Identity is ID.
type Item struct {
	ID       string   `json:"id"`
	MimeType string   `json:"mimeType"`
	BaseURL  string   `json:"baseUrl"`
	Filename string   `json:"filename"`
	Metadata Metadata `json:"mediaMetadata"`
}

// Metadata holds the backend's media metadata block.
type Metadata struct {
	CreationTime string `json:"creationTime"`
}

// IsVideo reports whether the item is a video. Only the MIME type prefix is checked.
func (i Item) IsVideo() bool {
	return strings.HasPrefix(i.MimeType, "video")
}

// DisplayURL returns the URL to display the item: a playable variant for
// videos, a fixed resolution for images.
func (i Item) DisplayURL() string {
	if i.IsVideo() {
		return i.BaseURL + VideoSuffix
	}
	return i.BaseURL + ImageSuffix
}

// Created parses the creation time. The second return is false when the
// backend sent no usable timestamp.
func (i Item) Created() (time.Time, bool) {
	if i.Metadata.CreationTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, i.Metadata.CreationTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Caption returns "filename - dd.mm.yyyy", or just the filename without a date.
func (i Item) Caption() string {
	t, ok := i.Created()
	if !ok {
		return i.Filename
	}
	return i.Filename + " - " + t.Local().Format(dateLayout)
}

// Age returns how long ago the item was created relative to now ("3 years ago").
func (i Item) Age(now time.Time) string {
	t, ok := i.Created()
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
