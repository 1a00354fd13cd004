package main

import (
	"errors"
	"flag"
	"image"
	"strings"
	"testing"

	"github.com/example/snapmark/internal/capture"
)

func swapCaptureSeams(t *testing.T) {
	t.Helper()
	shot, region, rect := captureScreenshotFn, captureRegionFn, captureRegionRectFn
	t.Cleanup(func() {
		captureScreenshotFn, captureRegionFn, captureRegionRectFn = shot, region, rect
	})
}

func TestSnapshotRunCaptureError(t *testing.T) {
	swapCaptureSeams(t)
	sentinel := errors.New("boom")
	captureScreenshotFn = func(string) (*image.RGBA, error) { return nil, sentinel }

	cmd := &snapshotCmd{mode: "screen", stdout: true}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestSnapshotRegionRectParseError(t *testing.T) {
	swapCaptureSeams(t)
	captureRegionRectFn = func(image.Rectangle) (*image.RGBA, error) {
		t.Fatal("capture should not run with an invalid rect")
		return nil, nil
	}

	cmd := &snapshotCmd{mode: "region", rect: "1,2,3", stdout: true}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "invalid region"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestAnnotateRunCaptureError(t *testing.T) {
	swapCaptureSeams(t)
	sentinel := errors.New("denied")
	captureRegionFn = func() (*image.RGBA, error) { return nil, sentinel }

	cmd := &annotateCmd{mode: "region"}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture region"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected message context, got %v", err)
	}
}

func TestAnnotateOpenMissingFile(t *testing.T) {
	cmd := &annotateCmd{mode: "file", file: "missing.png"}
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing.png") {
		t.Fatalf("expected file name in error, got %v", err)
	}
}

func TestSnapshotParseModeFromOperand(t *testing.T) {
	cmd, err := parseSnapshotCmd([]string{"screen", "primary"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cmd.mode != "screen" {
		t.Fatalf("mode = %q, want screen", cmd.mode)
	}
	if cmd.display != "primary" {
		t.Fatalf("display = %q, want primary", cmd.display)
	}
}

func TestSnapshotParseRejectsStdoutWithClipboard(t *testing.T) {
	_, err := parseSnapshotCmd([]string{"-stdout", "-to-clipboard", "screen"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-stdout cannot be used"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestSnapshotListMonitors(t *testing.T) {
	orig := listMonitorsFn
	t.Cleanup(func() { listMonitorsFn = orig })
	sentinel := errors.New("no randr")
	listMonitorsFn = func() ([]capture.MonitorInfo, error) { return nil, sentinel }

	cmd, err := parseSnapshotCmd([]string{"-list"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if runErr := cmd.Run(); !errors.Is(runErr, sentinel) {
		t.Fatalf("expected monitor listing error, got %v", runErr)
	}
}

func TestParseRect(t *testing.T) {
	rect, err := parseRect("10, 20, 110, 70")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rect != image.Rect(10, 20, 110, 70) {
		t.Fatalf("rect = %v", rect)
	}
	if _, err := parseRect("10,20,110"); err == nil {
		t.Fatalf("expected error for three values")
	}
	if _, err := parseRect("0,0,0,0"); err == nil {
		t.Fatalf("expected error for empty rect")
	}
}

func TestParseShadowOffset(t *testing.T) {
	dx, dy, err := parseShadowOffset("4, -6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dx != 4 || dy != -6 {
		t.Fatalf("offset = %d,%d", dx, dy)
	}
	if _, _, err := parseShadowOffset("4"); err == nil {
		t.Fatalf("expected error for single value")
	}
}

func TestUsageErrorRendersRootHelp(t *testing.T) {
	r := &root{program: "snapmark", fs: flag.NewFlagSet("snapmark", flag.ContinueOnError)}
	msg := (&UsageError{of: r}).Error()
	for _, want := range []string{"snapmark", "annotate", "snapshot", "draw"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("help text missing %q:\n%s", want, msg)
		}
	}
}
