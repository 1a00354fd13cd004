// Package render draws a scene onto an RGBA surface. A full repaint runs in
// fixed layer order — base image, pixelation regions, strokes, arrows,
// rectangles, ellipses, text, selection chrome — so pixelation reads and
// rewrites pixels before any vector overlay lands on top of them. Two extra
// draw paths exist purely for responsiveness during gestures and must
// converge on the same pixels as a full repaint once the gesture ends:
// Segment paints only a stroke's newest line segment, and Preview repaints
// the committed scene plus the one in-progress shape.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/scene"
)

// PixelSize is the mosaic tile edge used by pixelation regions.
const PixelSize = 8

// arrowheadMin is the smallest arrowhead length regardless of stroke width.
const arrowheadMin = 15

// textBacking is the semi-opaque white painted behind text annotations.
var textBacking = color.RGBA{R: 255, G: 255, B: 255, A: 200}

// Redraw clears dst, draws the base image if present, then every annotation
// list in layer order.
func Redraw(dst *image.RGBA, base image.Image, sc *scene.Scene) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if base != nil {
		draw.Draw(dst, dst.Bounds(), base, base.Bounds().Min, draw.Src)
	}
	for _, a := range sc.Pixelates {
		applyMosaic(dst, a)
	}
	for _, a := range sc.Strokes {
		drawStroke(dst, a)
	}
	for _, a := range sc.Arrows {
		drawArrow(dst, a)
	}
	for _, a := range sc.Rectangles {
		drawRectangle(dst, a)
	}
	for _, a := range sc.Ellipses {
		drawEllipse(dst, a)
	}
	for _, a := range sc.Texts {
		drawText(dst, a)
	}
}

// Preview repaints the committed scene and overlays one in-progress
// annotation, the drag preview path for shape tools.
func Preview(dst *image.RGBA, base image.Image, sc *scene.Scene, a annotation.Annotation) {
	Redraw(dst, base, sc)
	if a != nil {
		DrawAnnotation(dst, a)
	}
}

// Segment draws only the newest line segment of an actively growing stroke
// onto the existing surface, the O(1) fast path used at pointer-move
// frequency.
func Segment(dst *image.RGBA, s *annotation.Stroke) {
	n := len(s.Points)
	if n == 0 {
		return
	}
	if n == 1 {
		p := s.Points[0]
		stampDot(dst, int(p.X), int(p.Y), s.LineWidth/2, s.Color)
		return
	}
	p0 := s.Points[n-2]
	p1 := s.Points[n-1]
	drawThickLine(dst, int(p0.X), int(p0.Y), int(p1.X), int(p1.Y), s.Color, s.LineWidth)
}

// DrawAnnotation paints a single annotation of any kind.
func DrawAnnotation(dst *image.RGBA, a annotation.Annotation) {
	switch a := a.(type) {
	case *annotation.Stroke:
		drawStroke(dst, a)
	case *annotation.Arrow:
		drawArrow(dst, a)
	case *annotation.Rectangle:
		drawRectangle(dst, a)
	case *annotation.Ellipse:
		drawEllipse(dst, a)
	case *annotation.Text:
		drawText(dst, a)
	case *annotation.Pixelate:
		applyMosaic(dst, a)
	}
}

// Flatten composes the base image and scene into a fresh surface, the form
// handed to export encoders.
func Flatten(base image.Image, sc *scene.Scene) *image.RGBA {
	bounds := image.Rect(0, 0, 1, 1)
	if base != nil {
		bounds = base.Bounds().Sub(base.Bounds().Min)
	}
	out := image.NewRGBA(bounds)
	Redraw(out, base, sc)
	return out
}

func drawStroke(dst *image.RGBA, s *annotation.Stroke) {
	if len(s.Points) == 0 {
		return
	}
	if len(s.Points) == 1 {
		p := s.Points[0]
		stampDot(dst, int(p.X), int(p.Y), s.LineWidth/2, s.Color)
		return
	}
	for i := 1; i < len(s.Points); i++ {
		p0, p1 := s.Points[i-1], s.Points[i]
		drawThickLine(dst, int(p0.X), int(p0.Y), int(p1.X), int(p1.Y), s.Color, s.LineWidth)
	}
}

func drawArrow(dst *image.RGBA, a *annotation.Arrow) {
	dx := a.EndX - a.StartX
	dy := a.EndY - a.StartY
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	head := a.LineWidth * 4
	if head < arrowheadMin {
		head = arrowheadMin
	}
	ux, uy := dx/length, dy/length
	// Stop the shaft half an arrowhead short so the line never pokes out of
	// the head's tip.
	shaftX := a.EndX - ux*head/2
	shaftY := a.EndY - uy*head/2
	drawThickLine(dst, int(a.StartX), int(a.StartY), int(shaftX), int(shaftY), a.Color, a.LineWidth)

	angle := math.Atan2(dy, dx)
	left := angle + math.Pi/6
	right := angle - math.Pi/6
	lx := a.EndX - math.Cos(left)*head
	ly := a.EndY - math.Sin(left)*head
	rx := a.EndX - math.Cos(right)*head
	ry := a.EndY - math.Sin(right)*head
	fillTriangle(dst, a.EndX, a.EndY, lx, ly, rx, ry, a.Color)
}

func drawRectangle(dst *image.RGBA, a *annotation.Rectangle) {
	b := annotation.Bounds(a, nil)
	rect := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
	if a.Filled {
		fillRect(dst, rect, a.Color)
		return
	}
	strokeRect(dst, rect, a.Color, a.LineWidth)
}

func drawEllipse(dst *image.RGBA, a *annotation.Ellipse) {
	if a.RadiusX < 1 || a.RadiusY < 1 {
		return
	}
	if a.Filled {
		fillEllipse(dst, a.CenterX, a.CenterY, a.RadiusX, a.RadiusY, a.Color)
		return
	}
	strokeEllipse(dst, a.CenterX, a.CenterY, a.RadiusX, a.RadiusY, a.Color, a.LineWidth)
}

func drawText(dst *image.RGBA, a *annotation.Text) {
	if a.Text == "" {
		return
	}
	b := annotation.Bounds(a, MeasureText)
	backing := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
	fillRect(dst, backing, textBacking)
	drawString(dst, int(a.X), int(a.Y), a.Text, a.Color, a.FontSize)
}

// applyMosaic reads the pixels inside the region and overwrites each
// PixelSize tile with the color of the tile's approximate center pixel. It
// runs on every repaint; the region describes where to reapply pixelation,
// never a cached result.
func applyMosaic(dst *image.RGBA, a *annotation.Pixelate) {
	b := annotation.Bounds(a, nil)
	rect := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
	rect = rect.Intersect(dst.Bounds())
	if rect.Dx() < 1 || rect.Dy() < 1 {
		return
	}
	for by := rect.Min.Y; by < rect.Max.Y; by += PixelSize {
		for bx := rect.Min.X; bx < rect.Max.X; bx += PixelSize {
			x1 := bx + PixelSize
			y1 := by + PixelSize
			if x1 > rect.Max.X {
				x1 = rect.Max.X
			}
			if y1 > rect.Max.Y {
				y1 = rect.Max.Y
			}
			sample := dst.RGBAAt(bx+(x1-bx)/2, by+(y1-by)/2)
			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					dst.SetRGBA(x, y, sample)
				}
			}
		}
	}
}
