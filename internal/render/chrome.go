package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/hittest"
)

// SelectionChrome overlays the selection marquee: a dashed rectangle around
// the annotation's bounds plus a square handle at each corner. The chrome is
// painted after every annotation layer so it is never obscured.
func SelectionChrome(dst *image.RGBA, b annotation.Rect) {
	b = b.Norm()
	r := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
	drawDashedRect(dst, r, 4, color.White, color.Black)
	for _, hr := range handleRects(r) {
		draw.Draw(dst, hr, &image.Uniform{color.White}, image.Point{}, draw.Src)
		outlineRect(dst, hr, color.Black)
	}
}

// handleRects returns the four corner handle squares for a selection
// rectangle, in NW, NE, SW, SE order matching hittest.HandleAt.
func handleRects(r image.Rectangle) []image.Rectangle {
	hs := hittest.HandleSize / 2
	return []image.Rectangle{
		image.Rect(r.Min.X-hs, r.Min.Y-hs, r.Min.X+hs, r.Min.Y+hs),
		image.Rect(r.Max.X-hs, r.Min.Y-hs, r.Max.X+hs, r.Min.Y+hs),
		image.Rect(r.Min.X-hs, r.Max.Y-hs, r.Min.X+hs, r.Max.Y+hs),
		image.Rect(r.Max.X-hs, r.Max.Y-hs, r.Max.X+hs, r.Max.Y+hs),
	}
}

// outlineRect draws a one-pixel border just inside rect.
func outlineRect(dst *image.RGBA, rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		dst.Set(x, rect.Min.Y, col)
		dst.Set(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		dst.Set(rect.Min.X, y, col)
		dst.Set(rect.Max.X-1, y, col)
	}
}
