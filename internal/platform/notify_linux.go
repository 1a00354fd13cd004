//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const notifyTimeoutMs = 5000

// Notify sends a desktop notification over the org.freedesktop.Notifications
// bus interface. The preview image travels as the image-path hint; servers
// without image support ignore it.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"SnapMark", uint32(0), opts.IconPath, title, body, []string{}, hints, int32(notifyTimeoutMs))
	return call.Err
}
