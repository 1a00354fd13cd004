// Package hittest locates annotations and resize handles under a pointer
// position. Lookup order is a fixed kind priority (text, ellipse, rectangle,
// arrow, stroke, pixelate) and, within a kind, topmost first — the last
// drawn annotation wins. Ties between kinds go to the priority list, not
// draw order; shapes and text are usually drawn after freehand marks and
// pixelation, so the simplification rarely shows.
package hittest

import (
	"math"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/scene"
)

// Tolerance is the distance in image pixels within which a line-like
// annotation (arrow, stroke) still counts as hit.
const Tolerance = 10

// HandleSize is the edge length of a selection corner handle; a pointer
// within half of it from a corner grabs that handle.
const HandleSize = 8

// Hit identifies an annotation by its kind and position in the owning list.
// The annotation itself is re-resolved through the scene on each access.
type Hit struct {
	Kind  annotation.Kind
	Index int
}

// Handle tags which corner of a selection's bounds a resize grabs.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "resize-nw"
	case HandleNE:
		return "resize-ne"
	case HandleSW:
		return "resize-sw"
	case HandleSE:
		return "resize-se"
	}
	return "none"
}

// kindPriority is the fixed lookup order across kinds.
var kindPriority = []annotation.Kind{
	annotation.KindText,
	annotation.KindEllipse,
	annotation.KindRectangle,
	annotation.KindArrow,
	annotation.KindStroke,
	annotation.KindPixelate,
}

// FindAt returns the annotation under (x, y), if any. measure supplies text
// metrics for text bounds.
func FindAt(s *scene.Scene, x, y float64, measure annotation.Measurer) (Hit, bool) {
	for _, kind := range kindPriority {
		for i := s.Len(kind) - 1; i >= 0; i-- {
			a := s.At(kind, i)
			if hits(a, x, y, measure) {
				return Hit{Kind: kind, Index: i}, true
			}
		}
	}
	return Hit{}, false
}

func hits(a annotation.Annotation, x, y float64, measure annotation.Measurer) bool {
	switch a := a.(type) {
	case *annotation.Text, *annotation.Rectangle, *annotation.Ellipse, *annotation.Pixelate:
		return annotation.Bounds(a, measure).Contains(x, y)
	case *annotation.Arrow:
		return segmentDistance(x, y, a.StartX, a.StartY, a.EndX, a.EndY) <= Tolerance
	case *annotation.Stroke:
		if len(a.Points) == 1 {
			p := a.Points[0]
			return math.Hypot(x-p.X, y-p.Y) <= Tolerance
		}
		for i := 1; i < len(a.Points); i++ {
			p0, p1 := a.Points[i-1], a.Points[i]
			if segmentDistance(x, y, p0.X, p0.Y, p1.X, p1.Y) <= Tolerance {
				return true
			}
		}
	}
	return false
}

// HandleAt reports which corner handle of bounds b, if any, lies under
// (x, y).
func HandleAt(x, y float64, b annotation.Rect) Handle {
	n := b.Norm()
	corners := []struct {
		h    Handle
		cx   float64
		cy   float64
	}{
		{HandleNW, n.X, n.Y},
		{HandleNE, n.X + n.Width, n.Y},
		{HandleSW, n.X, n.Y + n.Height},
		{HandleSE, n.X + n.Width, n.Y + n.Height},
	}
	const half = HandleSize / 2.0
	for _, c := range corners {
		if math.Abs(x-c.cx) <= half && math.Abs(y-c.cy) <= half {
			return c.h
		}
	}
	return HandleNone
}

// segmentDistance is the distance from (px, py) to the segment
// (x0,y0)-(x1,y1).
func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x0, py-y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}
