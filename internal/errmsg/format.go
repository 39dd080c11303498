// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Settings operations
	OpSettingsLoad   Op = "load settings"
	OpShortcutSave   Op = "save shortcut"
	OpShortcutDelete Op = "delete shortcut"

	// Media operations
	OpMediaLoad   Op = "load selected media"
	OpRandomLoad  Op = "load random media"
	OpPreviewLoad Op = "load preview"

	// Session operations
	OpAction Op = "apply action"

	// Local storage
	OpJournalOpen   Op = "open journal"
	OpJournalRecord Op = "record action"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Default user-facing text per operation, shown when the backend gave no
// message of its own.
var defaults = map[Op]string{
	OpSettingsLoad:   "Ayarlar yüklenemedi.",
	OpShortcutSave:   "Kısayol kaydedilemedi.",
	OpShortcutDelete: "Kısayol silinemedi.",
	OpMediaLoad:      "Seçilen medya bilgileri alınamadı.",
	OpRandomLoad:     "Rastgele medya alınamadı.",
	OpPreviewLoad:    "Önizleme yüklenemedi.",
	OpAction:         "İşlem başarısız.",
	OpJournalOpen:    "Günlük açılamadı.",
	OpJournalRecord:  "Günlüğe yazılamadı.",
	OpInitialize:     "Uygulama başlatılamadı.",
}

// backendMessages lists operations whose failures carry the backend's own
// error text. Load failures always show the fixed default.
var backendMessages = map[Op]bool{
	OpShortcutSave:   true,
	OpShortcutDelete: true,
	OpAction:         true,
}

type userMessager interface {
	UserMessage() string
}

type backendMessager interface {
	BackendMessage() string
}

// Format creates a detailed error message for logs and the terminal.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// User returns the message shown in the status toast for a failed op.
// Local validation errors show their own text; backend mutations show the
// backend's message when it sent one; everything else shows the default.
func User(op Op, err error) string {
	if err == nil {
		return ""
	}
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	if backendMessages[op] {
		var bm backendMessager
		if errors.As(err, &bm) && bm.BackendMessage() != "" {
			return bm.BackendMessage()
		}
	}
	if msg, ok := defaults[op]; ok {
		return msg
	}
	return Format(op, err)
}
