package editor

import (
	"math"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/hittest"
	"github.com/example/snapmark/internal/scene"
)

// PointerDown begins a gesture at (x, y) in image coordinates. For the
// select tool it resolves handles before annotations; for drawing tools it
// instantiates the in-progress annotation; for the text tool it opens the
// inline entry.
func (e *Editor) PointerDown(x, y float64) {
	if e.textActive {
		// A press anywhere else is a blur and confirms the entry.
		e.ConfirmText()
	}
	origin := annotation.Point{X: x, Y: y}
	switch e.Scene.Tool {
	case scene.ToolSelect:
		e.selectDown(x, y)
	case scene.ToolPen:
		s := annotation.NewStroke(origin, e.Scene.Style)
		e.drawing = s
		if e.hooks.Segment != nil {
			e.hooks.Segment(s)
		}
	case scene.ToolArrow:
		e.drawing = annotation.NewArrow(origin, e.Scene.Style)
	case scene.ToolRectangle:
		e.drawing = annotation.NewRectangle(origin, e.Scene.Style)
	case scene.ToolEllipse:
		e.drawing = annotation.NewEllipse(origin, e.Scene.Style)
	case scene.ToolBlur:
		e.drawing = annotation.NewPixelate(origin)
	case scene.ToolText:
		e.textActive = true
		e.textBuf.Reset()
		e.textPos = annotation.Point{X: x, Y: y + annotation.TextBaseline()*e.Scene.Style.FontSize}
		e.repaint()
	}
}

func (e *Editor) selectDown(x, y float64) {
	if b, ok := e.SelectionBounds(); ok {
		if h := hittest.HandleAt(x, y, b); h != hittest.HandleNone {
			a := e.Scene.At(e.sel.Kind, e.sel.Index)
			e.History.Save(e.Scene)
			e.drag = dragResize
			e.handle = h
			e.dragStart = annotation.Point{X: x, Y: y}
			e.origBounds = b
			e.resizeBase = annotation.Clone(a)
			return
		}
	}
	if hit, ok := hittest.FindAt(e.Scene, x, y, e.measure); ok {
		e.sel = hit
		e.selected = true
		e.History.Save(e.Scene)
		e.drag = dragMove
		e.last = annotation.Point{X: x, Y: y}
		e.repaint()
		return
	}
	e.selected = false
	e.drag = dragNone
	e.repaint()
}

// PointerMove advances the active gesture. Pen strokes grow and draw
// incrementally; other drawing tools buffer the newest coordinate and wait
// for the next frame; select-mode drags apply move or resize immediately.
func (e *Editor) PointerMove(x, y float64) {
	if e.drawing != nil {
		if s, ok := e.drawing.(*annotation.Stroke); ok {
			s.AppendPoint(annotation.Point{X: x, Y: y})
			if e.hooks.Segment != nil {
				e.hooks.Segment(s)
			}
			return
		}
		// Overwrite, never queue: one pending coordinate and at most one
		// scheduled preview keeps redraw at one per frame.
		e.pending = annotation.Point{X: x, Y: y}
		if !e.queued {
			e.queued = true
			e.schedule(e.flushPreview)
		}
		return
	}

	switch e.drag {
	case dragMove:
		a := e.Scene.At(e.sel.Kind, e.sel.Index)
		if a == nil {
			return
		}
		annotation.Move(a, x-e.last.X, y-e.last.Y)
		e.last = annotation.Point{X: x, Y: y}
		e.repaint()
	case dragResize:
		if e.resizeBase == nil || e.Scene.At(e.sel.Kind, e.sel.Index) == nil {
			return
		}
		nb := resizeBounds(e.origBounds, e.handle, x-e.dragStart.X, y-e.dragStart.Y)
		// Rebuild from the drag-start copy so repeated adjustments scale
		// from the frozen original, not from already-scaled coordinates.
		fresh := annotation.Clone(e.resizeBase)
		annotation.ResizeTo(fresh, nb, e.origBounds)
		e.Scene.Replace(e.sel.Kind, e.sel.Index, fresh)
		e.repaint()
	}
}

// PointerUp ends the active gesture. Drawing gestures commit only past their
// threshold and save history; select-mode drags end with no extra snapshot,
// that push happened at drag start.
func (e *Editor) PointerUp(x, y float64) {
	if e.drawing != nil {
		a := e.drawing
		e.drawing = nil
		e.queued = false
		if _, ok := a.(*annotation.Stroke); !ok {
			annotation.SetEnd(a, x, y)
		}
		if !crossesThreshold(a) {
			e.repaint()
			return
		}
		e.Scene.Append(a)
		e.History.Save(e.Scene)
		e.repaint()
		return
	}
	if e.drag != dragNone {
		e.drag = dragNone
		e.resizeBase = nil
		e.repaint()
	}
}

// PointerLeave abandons an in-progress drawing gesture with no commit and no
// history entry. A select-mode drag is left alone; it ends wherever the
// pointer is released.
func (e *Editor) PointerLeave() {
	if e.drawing == nil {
		return
	}
	e.drawing = nil
	e.queued = false
	e.repaint()
}

func (e *Editor) flushPreview() {
	if !e.queued || e.drawing == nil {
		e.queued = false
		return
	}
	e.queued = false
	annotation.SetEnd(e.drawing, e.pending.X, e.pending.Y)
	if e.hooks.Preview != nil {
		e.hooks.Preview(e.drawing)
	}
}

func crossesThreshold(a annotation.Annotation) bool {
	switch a := a.(type) {
	case *annotation.Stroke:
		return len(a.Points) >= 1
	case *annotation.Arrow:
		return math.Hypot(a.EndX-a.StartX, a.EndY-a.StartY) > minArrowLength
	case *annotation.Rectangle:
		return math.Abs(a.Width)+math.Abs(a.Height) > minBoxExtent
	case *annotation.Ellipse:
		return a.RadiusX+a.RadiusY > minRadiusSum
	case *annotation.Pixelate:
		return math.Abs(a.Width)+math.Abs(a.Height) > minBoxExtent
	}
	return false
}

// resizeBounds applies a drag delta to the corner named by h, keeping the
// opposite corner fixed.
func resizeBounds(orig annotation.Rect, h hittest.Handle, dx, dy float64) annotation.Rect {
	b := orig
	switch h {
	case hittest.HandleNW:
		b.X += dx
		b.Y += dy
		b.Width -= dx
		b.Height -= dy
	case hittest.HandleNE:
		b.Y += dy
		b.Width += dx
		b.Height -= dy
	case hittest.HandleSW:
		b.X += dx
		b.Width -= dx
		b.Height += dy
	case hittest.HandleSE:
		b.Width += dx
		b.Height += dy
	}
	return b
}
