package annotation

// MinResize is the smallest bound extent a resize may produce. Requested
// bounds below it are clamped before any coordinates change.
const MinResize = 10

// Move translates every coordinate field of a by (dx, dy): all points for a
// stroke, both endpoints for an arrow, the origin for box-like variants, the
// center and retained start for an ellipse, and the anchor for text.
func Move(a Annotation, dx, dy float64) {
	switch a := a.(type) {
	case *Stroke:
		for i := range a.Points {
			a.Points[i].X += dx
			a.Points[i].Y += dy
		}
	case *Arrow:
		a.StartX += dx
		a.StartY += dy
		a.EndX += dx
		a.EndY += dy
	case *Rectangle:
		a.X += dx
		a.Y += dy
	case *Ellipse:
		a.StartX += dx
		a.StartY += dy
		a.CenterX += dx
		a.CenterY += dy
	case *Text:
		a.X += dx
		a.Y += dy
	case *Pixelate:
		a.X += dx
		a.Y += dy
	}
}

// SetEnd updates the in-progress geometry of a drag-defined annotation to
// the current pointer position, recomputing derived fields per variant.
// Strokes grow via AppendPoint instead and text has no drag geometry; both
// are no-ops here.
func SetEnd(a Annotation, x, y float64) {
	switch a := a.(type) {
	case *Arrow:
		a.EndX = x
		a.EndY = y
	case *Rectangle:
		a.Width = x - a.X
		a.Height = y - a.Y
	case *Ellipse:
		a.CenterX = (a.StartX + x) / 2
		a.CenterY = (a.StartY + y) / 2
		a.RadiusX = abs(x-a.StartX) / 2
		a.RadiusY = abs(y-a.StartY) / 2
	case *Pixelate:
		a.Width = x - a.X
		a.Height = y - a.Y
	}
}

// ResizeTo reshapes a so its bounds become b, using orig (the bounds frozen
// at drag start) as the basis so repeated adjustments do not accumulate
// rounding error. Box-like variants take the new bounds directly; an ellipse
// recomputes center and radii; arrows and strokes are rescaled affinely by
// the per-axis ratio of the two bounds; text only relocates to the new
// bounds' top-left plus its own padding and baseline offset.
func ResizeTo(a Annotation, b, orig Rect) {
	if b.Width < MinResize {
		b.Width = MinResize
	}
	if b.Height < MinResize {
		b.Height = MinResize
	}
	sx, sy := 1.0, 1.0
	if orig.Width != 0 {
		sx = b.Width / orig.Width
	}
	if orig.Height != 0 {
		sy = b.Height / orig.Height
	}
	switch a := a.(type) {
	case *Stroke:
		for i := range a.Points {
			a.Points[i].X = b.X + (a.Points[i].X-orig.X)*sx
			a.Points[i].Y = b.Y + (a.Points[i].Y-orig.Y)*sy
		}
	case *Arrow:
		a.StartX = b.X + (a.StartX-orig.X)*sx
		a.StartY = b.Y + (a.StartY-orig.Y)*sy
		a.EndX = b.X + (a.EndX-orig.X)*sx
		a.EndY = b.Y + (a.EndY-orig.Y)*sy
	case *Rectangle:
		a.X = b.X
		a.Y = b.Y
		a.Width = b.Width
		a.Height = b.Height
	case *Ellipse:
		a.CenterX = b.X + b.Width/2
		a.CenterY = b.Y + b.Height/2
		a.RadiusX = b.Width / 2
		a.RadiusY = b.Height / 2
		a.StartX = b.X + (a.StartX-orig.X)*sx
		a.StartY = b.Y + (a.StartY-orig.Y)*sy
	case *Text:
		a.X = b.X + textPadding
		a.Y = b.Y + textPadding + textBaseline*a.FontSize
	case *Pixelate:
		a.X = b.X
		a.Y = b.Y
		a.Width = b.Width
		a.Height = b.Height
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
