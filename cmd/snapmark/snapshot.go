package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/render"
)

// Capture entry points, swappable in tests.
var (
	captureScreenshotFn = capture.CaptureScreenshot
	captureRegionFn     = capture.CaptureRegion
	captureRegionRectFn = capture.CaptureRegionRect
	listMonitorsFn      = capture.ListMonitors
)

// snapshotCmd captures pixels and writes them out without opening the
// editor.
type snapshotCmd struct {
	output        string
	stdout        bool
	toClipboard   bool
	listDisplays  bool
	mode          string
	display       string
	rect          string
	shadow        bool
	shadowBlur    int
	shadowOffset  string
	shadowOpacity float64
	*root
	fs *flag.FlagSet
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	s := &snapshotCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	defaults := render.DefaultShadowOptions()
	fs.StringVar(&s.output, "output", "screenshot.png", "write the capture to this file path, .png or .pdf")
	fs.StringVar(&s.mode, "mode", "", "capture mode: screen or region")
	fs.StringVar(&s.display, "display", "", "monitor selector for screen captures: index, name or primary")
	fs.StringVar(&s.rect, "rect", "", "capture rectangle x0,y0,x1,y1 when targeting a region")
	fs.BoolVar(&s.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&s.toClipboard, "to-clip", false, "copy the capture to the clipboard (alias)")
	fs.BoolVar(&s.listDisplays, "list", false, "list the connected monitors and exit")
	fs.BoolVar(&s.shadow, "shadow", false, "apply a drop shadow to the captured image")
	fs.IntVar(&s.shadowBlur, "shadow-blur", defaults.Blur, "drop shadow blur radius in pixels")
	fs.StringVar(&s.shadowOffset, "shadow-offset", fmt.Sprintf("%d,%d", defaults.OffsetX, defaults.OffsetY), "drop shadow offset as dx,dy")
	fs.Float64Var(&s.shadowOpacity, "shadow-opacity", defaults.Opacity, "drop shadow opacity between 0 and 1")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if _, _, err := parseShadowOffset(s.shadowOffset); err != nil {
		return nil, err
	}
	if s.toClipboard && s.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if s.listDisplays {
		return s, nil
	}
	operands := fs.Args()
	if strings.TrimSpace(s.mode) == "" {
		if len(operands) == 0 {
			return nil, &UsageError{of: s}
		}
		s.mode = strings.ToLower(strings.TrimSpace(operands[0]))
		operands = operands[1:]
	} else {
		s.mode = strings.ToLower(strings.TrimSpace(s.mode))
	}
	switch s.mode {
	case "screen", "region":
	default:
		return nil, &UsageError{of: s}
	}
	if len(operands) > 0 {
		arg := strings.TrimSpace(strings.Join(operands, " "))
		switch s.mode {
		case "screen":
			if s.display == "" {
				s.display = arg
			}
		case "region":
			if s.rect == "" {
				s.rect = arg
			}
		}
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	if s.listDisplays {
		return s.printMonitors()
	}
	img, err := s.capture()
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", s.mode, err)
	}
	if s.shadow {
		img = render.AddShadow(img, s.shadowOptions())
	}
	detail := s.describeCapture()
	if s.root != nil {
		s.root.notifyCapture(detail, img)
	}
	if s.toClipboard {
		if err := export.ToClipboard(img); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if s.root != nil {
			s.root.notifyCopy(detail)
		}
		return nil
	}
	if s.stdout {
		if err := export.WritePNG(os.Stdout, img); err != nil {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
		return nil
	}
	if err := export.Save(s.output, img); err != nil {
		return err
	}
	saved := s.output
	if abs, err := filepath.Abs(s.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if s.root != nil {
		s.root.notifySave(saved)
	}
	return nil
}

func (s *snapshotCmd) capture() (*image.RGBA, error) {
	switch s.mode {
	case "screen":
		return captureScreenshotFn(s.display)
	case "region":
		if strings.TrimSpace(s.rect) == "" {
			return captureRegionFn()
		}
		rect, err := parseRect(s.rect)
		if err != nil {
			return nil, err
		}
		return captureRegionRectFn(rect)
	default:
		return nil, errors.New("unsupported capture mode")
	}
}

func (s *snapshotCmd) printMonitors() error {
	monitors, err := listMonitorsFn()
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = " primary"
		}
		fmt.Printf("#%d %s %dx%d+%d+%d%s\n", m.Index, m.Name,
			m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, primary)
	}
	return nil
}

func (s *snapshotCmd) describeCapture() string {
	switch s.mode {
	case "screen":
		if target := strings.TrimSpace(s.display); target != "" {
			return fmt.Sprintf("screen %s", target)
		}
	case "region":
		if region := strings.TrimSpace(s.rect); region != "" {
			return fmt.Sprintf("region %s", region)
		}
	}
	if s.mode == "" {
		return "capture"
	}
	return s.mode
}

func (s *snapshotCmd) shadowOptions() render.ShadowOptions {
	opts := render.DefaultShadowOptions()
	if s.shadowBlur >= 0 {
		opts.Blur = s.shadowBlur
	} else {
		opts.Blur = 0
	}
	opts.OffsetX, opts.OffsetY, _ = parseShadowOffset(s.shadowOffset)
	switch {
	case s.shadowOpacity <= 0:
		opts.Opacity = 0
	case s.shadowOpacity >= 1:
		opts.Opacity = 1
	default:
		opts.Opacity = s.shadowOpacity
	}
	return opts
}

func parseShadowOffset(val string) (dx, dy int, err error) {
	parts := strings.Split(val, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid shadow offset %q", val)
	}
	vals := make([]int, 2)
	for i, p := range parts {
		v, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return 0, 0, fmt.Errorf("invalid shadow offset %q", val)
		}
		vals[i] = v
	}
	return vals[0], vals[1], nil
}

func parseRect(val string) (image.Rectangle, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
	}
	nums := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
		}
		nums[i] = v
	}
	rect := image.Rect(nums[0], nums[1], nums[2], nums[3])
	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", val)
	}
	return rect, nil
}
