package ui

import (
	"image"
	"testing"

	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
)

func TestFitZoomNeverUpscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	z := fitZoom(img, 48, 2000, 2000)
	if z != 1 {
		t.Fatalf("expected zoom capped at 1, got %v", z)
	}
}

func TestFitZoomShrinksToWindow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	winW, winH := 548, 298
	z := fitZoom(img, 48, winW, winH)
	if got := int(float64(img.Bounds().Dx()) * z); got > winW-48 {
		t.Fatalf("scaled width %d exceeds available %d", got, winW-48)
	}
	if got := int(float64(img.Bounds().Dy()) * z); got > winH-titleHeight-bottomHeight {
		t.Fatalf("scaled height %d exceeds available %d", got, winH-titleHeight-bottomHeight)
	}
}

func TestImageRectAnchorsBelowTitleBar(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	r := imageRect(img, 60, 1, image.Point{})
	if r.Min.X != 60 || r.Min.Y != titleHeight {
		t.Fatalf("unexpected origin %v", r.Min)
	}
	if r.Dx() != 200 || r.Dy() != 100 {
		t.Fatalf("unexpected size %v", r)
	}
}

func TestImageRectScalesOffsetByZoom(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	r := imageRect(img, 60, 2, image.Pt(10, -5))
	if r.Min.X != 60+20 {
		t.Fatalf("expected x origin %d, got %d", 60+20, r.Min.X)
	}
	if r.Min.Y != titleHeight-10 {
		t.Fatalf("expected y origin %d, got %d", titleHeight-10, r.Min.Y)
	}
	if r.Dx() != 400 || r.Dy() != 200 {
		t.Fatalf("unexpected size %v", r)
	}
}

func TestWindowToImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	zoom := 1.5
	offset := image.Pt(12, 7)
	dst := imageRect(img, 48, zoom, offset)

	// A point known in image space should come back after the transform the
	// event loop applies to mouse coordinates.
	ix, iy := 100.0, 50.0
	wx := float64(dst.Min.X) + ix*zoom
	wy := float64(dst.Min.Y) + iy*zoom
	gx := (wx - float64(dst.Min.X)) / zoom
	gy := (wy - float64(dst.Min.Y)) / zoom
	if gx != ix || gy != iy {
		t.Fatalf("round trip gave (%v, %v), want (%v, %v)", gx, gy, ix, iy)
	}
}

func TestToolbarWidthFitsLabels(t *testing.T) {
	tb := newToolbar(theme.Default(), scene.New())
	if tb.width < 48 {
		t.Fatalf("toolbar width %d below minimum", tb.width)
	}
}

func TestToolbarLayoutSections(t *testing.T) {
	tb := newToolbar(theme.Default(), scene.New())

	l := tb.layout(scene.ToolSelect)
	if l.hasWidths || l.hasFill || l.hasSizes {
		t.Fatalf("select tool should not expose style sections: %+v", l)
	}

	l = tb.layout(scene.ToolPen)
	if !l.hasWidths || l.hasFill || l.hasSizes {
		t.Fatalf("pen tool should expose widths only: %+v", l)
	}

	l = tb.layout(scene.ToolRectangle)
	if !l.hasWidths || !l.hasFill {
		t.Fatalf("rectangle tool should expose widths and fill: %+v", l)
	}

	l = tb.layout(scene.ToolText)
	if !l.hasSizes || l.hasWidths {
		t.Fatalf("text tool should expose font sizes only: %+v", l)
	}
	if l.paletteY <= l.toolsY {
		t.Fatalf("palette should sit below tools: %+v", l)
	}
}

func TestPaletteGridCoversAllSwatches(t *testing.T) {
	tb := newToolbar(theme.Default(), scene.New())
	cols := tb.paletteCols()
	if cols < 1 {
		t.Fatalf("no palette columns")
	}
	rows := (len(palette) + cols - 1) / cols
	if tb.paletteHeight() != rows*swatchStep {
		t.Fatalf("palette height %d does not cover %d rows", tb.paletteHeight(), rows)
	}
}
