// Package capture grabs desktop pixels for annotation. On Unix it asks the
// XDG desktop portal first and falls back to reading the X11 root window when
// no portal implementation answers.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
)

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var errNoMonitors = errors.New("no monitors available")

// Indirection points so tests can substitute the platform calls.
var (
	portalScreenshotFn = portalScreenshot
	x11ScreenshotFn    = x11Screenshot
	listMonitorsFn     = listMonitors
)

// CaptureScreenshot captures the desktop. When a display selector is provided
// it crops the result to the matching monitor.
func CaptureScreenshot(display string) (*image.RGBA, error) {
	img, err := desktopScreenshot()
	if err != nil {
		return nil, err
	}
	if display == "" {
		return img, nil
	}
	monitors, err := ListMonitors()
	if err != nil {
		return nil, err
	}
	monitor, err := FindMonitor(monitors, display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, monitor.Rect)
}

// CaptureRegion uses the portal to let the user select a region interactively.
// There is no fallback: only the portal can draw the selection UI.
func CaptureRegion() (*image.RGBA, error) {
	return portalScreenshotFn(true)
}

// CaptureRegionRect captures a specific rectangle in global screen coordinates.
func CaptureRegionRect(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	shot, err := desktopScreenshot()
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

// ListMonitors reports the connected monitors in layout order.
func ListMonitors() ([]MonitorInfo, error) {
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

// FindMonitor matches a selector against the monitor list. Selectors are
// "primary", a zero-based index (optionally prefixed with '#'), or a
// case-insensitive substring of the output name. An empty selector picks the
// first monitor.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	if selector == "" {
		return monitors[0], nil
	}
	sel := strings.TrimSpace(selector)
	lower := strings.ToLower(sel)
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if strings.HasPrefix(lower, "#") {
		lower = lower[1:]
	}
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

func desktopScreenshot() (*image.RGBA, error) {
	img, portalErr := portalScreenshotFn(false)
	if portalErr == nil {
		return img, nil
	}
	if !portalUnavailable(portalErr) {
		return nil, portalErr
	}
	img, x11Err := x11ScreenshotFn()
	if x11Err != nil {
		return nil, fmt.Errorf("x11 fallback: %v: %w", x11Err, portalErr)
	}
	return img, nil
}

// portalUnavailable reports whether the error means no portal implementation
// answered, as opposed to the portal existing and refusing the request.
func portalUnavailable(err error) bool {
	var name string
	var ptrErr *dbus.Error
	var valErr dbus.Error
	switch {
	case errors.As(err, &ptrErr):
		name = ptrErr.Name
	case errors.As(err, &valErr):
		name = valErr.Name
	default:
		return false
	}
	switch name {
	case "org.freedesktop.portal.Error.NotSupported",
		"org.freedesktop.DBus.Error.ServiceUnknown",
		"org.freedesktop.DBus.Error.UnknownMethod",
		"org.freedesktop.DBus.Error.UnknownObject",
		"org.freedesktop.DBus.Error.NoReply",
		"org.freedesktop.DBus.Error.Disconnected":
		return true
	}
	return false
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
