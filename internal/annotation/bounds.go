package annotation

// Rect is an axis-aligned bounding box in image-pixel coordinates. Bounds are
// always computed on demand; callers must not cache one across a mutation.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Norm returns the rectangle with non-negative extents, flipping the origin
// when the width or height is negative.
func (r Rect) Norm() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether the point lies inside the normalized rectangle.
func (r Rect) Contains(x, y float64) bool {
	n := r.Norm()
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// Measurer reports the rendered width and height of annotation text at a
// font size. The renderer supplies the real implementation; tests may use a
// fixed-metric stand-in.
type Measurer func(text string, size float64) (w, h float64)

const (
	// textPadding frames the measured glyph run on all sides when deriving
	// text bounds and the backing rectangle.
	textPadding = 4
	// textBaseline is the fraction of the font size between the top of the
	// glyph box and the baseline.
	textBaseline = 0.8
)

// TextPadding returns the frame applied around a measured glyph run.
func TextPadding() float64 { return textPadding }

// TextBaseline returns the baseline offset factor for a font size: the text
// entry overlay and the committed annotation both anchor the baseline at
// fontSize times this factor below the anchor's top edge.
func TextBaseline() float64 { return textBaseline }

// Bounds computes the axis-aligned bounding box of a. measure is consulted
// only for text annotations; when nil, a rough width estimate keeps the
// result usable for hit tests.
func Bounds(a Annotation, measure Measurer) Rect {
	switch a := a.(type) {
	case *Stroke:
		if len(a.Points) == 0 {
			return Rect{}
		}
		minX, minY := a.Points[0].X, a.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range a.Points[1:] {
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	case *Arrow:
		minX, maxX := a.StartX, a.EndX
		if maxX < minX {
			minX, maxX = maxX, minX
		}
		minY, maxY := a.StartY, a.EndY
		if maxY < minY {
			minY, maxY = maxY, minY
		}
		return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	case *Rectangle:
		return Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}.Norm()
	case *Ellipse:
		return Rect{
			X:      a.CenterX - a.RadiusX,
			Y:      a.CenterY - a.RadiusY,
			Width:  2 * a.RadiusX,
			Height: 2 * a.RadiusY,
		}
	case *Text:
		w, h := measureText(a, measure)
		return Rect{
			X:      a.X - textPadding,
			Y:      a.Y - textBaseline*a.FontSize - textPadding,
			Width:  w + 2*textPadding,
			Height: h + 2*textPadding,
		}
	case *Pixelate:
		return Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}.Norm()
	}
	return Rect{}
}

func measureText(t *Text, measure Measurer) (w, h float64) {
	if measure != nil {
		return measure(t.Text, t.FontSize)
	}
	// Fallback estimate when no font metrics are wired up.
	return float64(len(t.Text)) * t.FontSize * 0.6, t.FontSize
}
