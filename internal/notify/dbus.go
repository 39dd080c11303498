//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"
	methodNotify      = notificationsName + ".Notify"
	methodCloseNotify = notificationsName + ".CloseNotification"
	hintCount         = 2
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one it returns Nop and no
// error: notifications are optional.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("no D-Bus session bus, desktop notifications disabled")
		return Nop{}, nil //nolint:nilerr // notifications are optional
	}
	return &dbusNotifier{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

// Notify calls
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := make(map[string]dbus.Variant, hintCount)
	hints["urgency"] = dbus.MakeVariant(byte(notif.Urgency))
	hints["desktop-entry"] = dbus.MakeVariant(appName)

	call := n.obj.Call(methodNotify, 0,
		appName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints,
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(methodCloseNotify, 0, id).Err
}
