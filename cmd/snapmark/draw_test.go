package main

import (
	"image/color"
	"strings"
	"testing"

	"github.com/example/snapmark/internal/annotation"
)

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "line", "0", "0", "1", "1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejectsUnknownShape(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "in.png", "star", "0", "0"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := `unsupported shape "star"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawNegativeCoordinates(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "in.png", "-color", "blue", "line", "-5", "0", "10", "20"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.coords[0] != -5 {
		t.Fatalf("coords = %v, want leading -5", cmd.coords)
	}
	if cmd.style.Color != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("color = %v, want blue", cmd.style.Color)
	}
}

func TestParseDrawPenNeedsPointPairs(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "in.png", "pen", "0", "0", "10"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "even number of coordinates"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawTextContent(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "in.png", "text", "12", "40", "hello", "there"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.text != "hello there" {
		t.Fatalf("text = %q", cmd.text)
	}
	a, ok := cmd.buildAnnotation().(*annotation.Text)
	if !ok {
		t.Fatalf("expected a text annotation, got %T", cmd.buildAnnotation())
	}
	if a.X != 12 || a.Y != 40 || a.Text != "hello there" {
		t.Fatalf("annotation = %+v", a)
	}
}

func TestDrawCircleBuildsEllipse(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "in.png", "circle", "50", "60", "20"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := cmd.buildAnnotation().(*annotation.Ellipse)
	if !ok {
		t.Fatalf("expected an ellipse, got %T", cmd.buildAnnotation())
	}
	if a.CenterX != 50 || a.CenterY != 60 {
		t.Fatalf("center = (%g, %g), want (50, 60)", a.CenterX, a.CenterY)
	}
	if a.RadiusX != 20 || a.RadiusY != 20 {
		t.Fatalf("radii = (%g, %g), want (20, 20)", a.RadiusX, a.RadiusY)
	}
}

func TestDrawCircleRejectsNonPositiveRadius(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "in.png", "circle", "50", "60", "0"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "radius must be positive"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestDrawBlurBuildsPixelate(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "in.png", "blur", "10", "10", "60", "40"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := cmd.buildAnnotation().(*annotation.Pixelate)
	if !ok {
		t.Fatalf("expected a pixelate region, got %T", cmd.buildAnnotation())
	}
	if a.Width != 50 || a.Height != 30 {
		t.Fatalf("extent = %gx%g, want 50x30", a.Width, a.Height)
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		spec string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{R: 255, A: 255}, true},
		{"Rebeccapurple", color.RGBA{R: 0x66, G: 0x33, B: 0x99, A: 255}, true},
		{"#336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, true},
		{"#33669980", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0x80}, true},
		{"", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tc := range cases {
		got, err := parseColor(tc.spec)
		if tc.ok != (err == nil) {
			t.Fatalf("parseColor(%q) error = %v, want ok=%v", tc.spec, err, tc.ok)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("parseColor(%q) = %v, want %v", tc.spec, got, tc.want)
		}
	}
}

func TestSplitDrawArgsSeparatesFlagsAndOperands(t *testing.T) {
	flags, positionals, err := splitDrawArgs([]string{"-file", "in.png", "--filled", "rect", "-5", "0", "10", "20", "-color=blue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFlags := []string{"-file", "in.png", "-filled", "-color=blue"}
	if len(flags) != len(wantFlags) {
		t.Fatalf("flags = %v, want %v", flags, wantFlags)
	}
	for i := range wantFlags {
		if flags[i] != wantFlags[i] {
			t.Fatalf("flags = %v, want %v", flags, wantFlags)
		}
	}
	wantPos := []string{"rect", "-5", "0", "10", "20"}
	if len(positionals) != len(wantPos) {
		t.Fatalf("positionals = %v, want %v", positionals, wantPos)
	}
	for i := range wantPos {
		if positionals[i] != wantPos[i] {
			t.Fatalf("positionals = %v, want %v", positionals, wantPos)
		}
	}
}

func TestSplitDrawArgsDoubleDashStopsFlags(t *testing.T) {
	_, positionals, err := splitDrawArgs([]string{"--", "-color", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positionals) != 2 || positionals[0] != "-color" {
		t.Fatalf("positionals = %v", positionals)
	}
}
