// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"fmt"
	"strings"
)

const appName = "phototriage"

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Nop is a Notifier that sends nothing.
type Nop struct{}

func (Nop) Notify(_ Notification) (uint32, error) { return 0, nil }
func (Nop) Close(_ uint32) error                  { return nil }

// Completion builds the notification sent when a session finishes.
// trashed and moved break applied down; both zero means unknown.
func Completion(message string, applied, trashed, moved int) Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "%d öğe düzenlendi.", applied)
	if trashed+moved > 0 {
		fmt.Fprintf(&body, "\nÇöp kutusu: %d, albüm: %d", trashed, moved)
	}
	return Notification{
		Title:   message,
		Body:    body.String(),
		Icon:    "image-x-generic",
		Timeout: 5000,
		Urgency: UrgencyNormal,
	}
}
