// Package annotation defines the vector and pixel annotation variants drawn
// over a captured image, together with their geometric operations. The six
// variants form a tagged union: each concrete type reports its Kind and the
// geometry functions in this package switch exhaustively over it, which keeps
// cloning, serialization and cross-kind resize math in one place.
package annotation

import (
	"image/color"

	"github.com/google/uuid"
)

// Kind discriminates the annotation variants.
type Kind int

const (
	KindStroke Kind = iota
	KindArrow
	KindRectangle
	KindEllipse
	KindText
	KindPixelate
)

var kindNames = map[Kind]string{
	KindStroke:    "stroke",
	KindArrow:     "arrow",
	KindRectangle: "rectangle",
	KindEllipse:   "ellipse",
	KindText:      "text",
	KindPixelate:  "pixelate",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Point is a location in image-pixel coordinates. Pointer events are
// converted from window coordinates before any code in this package sees
// them.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style captures the drawing settings read from the settings surface at the
// moment an annotation is instantiated. Settings changes never re-apply to
// existing annotations.
type Style struct {
	Color     color.RGBA
	LineWidth float64
	FontSize  float64
	Filled    bool
}

// Annotation is the sum type over the six variants.
type Annotation interface {
	Kind() Kind
}

// Stroke is an open freehand polyline. It grows by appending points during a
// drawing gesture. A stroke with zero points is invalid and must never be
// committed to a scene; a single-point stroke renders as a dot of diameter
// LineWidth.
type Stroke struct {
	ID        string     `json:"id"`
	Color     color.RGBA `json:"color"`
	LineWidth float64    `json:"lineWidth"`
	Points    []Point    `json:"points"`
}

func (*Stroke) Kind() Kind { return KindStroke }

// AppendPoint extends the polyline by one sample.
func (s *Stroke) AppendPoint(p Point) {
	s.Points = append(s.Points, p)
}

// Arrow is a straight shaft from start to end with a filled head at the end.
type Arrow struct {
	ID        string     `json:"id"`
	StartX    float64    `json:"startX"`
	StartY    float64    `json:"startY"`
	EndX      float64    `json:"endX"`
	EndY      float64    `json:"endY"`
	Color     color.RGBA `json:"color"`
	LineWidth float64    `json:"lineWidth"`
}

func (*Arrow) Kind() Kind { return KindArrow }

// Rectangle keeps the drag origin and signed extents. Width and Height may be
// negative while a drag is in progress; they are normalized only at bounds
// and render time.
type Rectangle struct {
	ID        string     `json:"id"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Color     color.RGBA `json:"color"`
	LineWidth float64    `json:"lineWidth"`
	Filled    bool       `json:"filled"`
}

func (*Rectangle) Kind() Kind { return KindRectangle }

// Ellipse stores the derived center and radii next to the retained drag start
// point. Center and radii follow from start and the current end point
// (center = midpoint, radius = half the extent per axis); the start point is
// kept because it anchors proportional rescaling during resize.
type Ellipse struct {
	ID        string     `json:"id"`
	StartX    float64    `json:"startX"`
	StartY    float64    `json:"startY"`
	CenterX   float64    `json:"centerX"`
	CenterY   float64    `json:"centerY"`
	RadiusX   float64    `json:"radiusX"`
	RadiusY   float64    `json:"radiusY"`
	Color     color.RGBA `json:"color"`
	LineWidth float64    `json:"lineWidth"`
	Filled    bool       `json:"filled"`
}

func (*Ellipse) Kind() Kind { return KindEllipse }

// Text anchors a glyph run at a left-edge/baseline coordinate. Its bounds are
// derived from a measurement call, never stored.
type Text struct {
	ID       string     `json:"id"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Text     string     `json:"text"`
	FontSize float64    `json:"fontSize"`
	Color    color.RGBA `json:"color"`
}

func (*Text) Kind() Kind { return KindText }

// Pixelate describes a rectangle whose pixels are mosaic-blocked on every
// repaint. It is a description of where to reapply pixelation, not a stored
// bitmap; the region must be reprocessed on each full redraw.
type Pixelate struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (*Pixelate) Kind() Kind { return KindPixelate }

// NewStroke starts a freehand stroke at origin.
func NewStroke(origin Point, st Style) *Stroke {
	return &Stroke{
		ID:        uuid.NewString(),
		Color:     st.Color,
		LineWidth: st.LineWidth,
		Points:    []Point{origin},
	}
}

// NewArrow starts an arrow with both endpoints at origin.
func NewArrow(origin Point, st Style) *Arrow {
	return &Arrow{
		ID:        uuid.NewString(),
		StartX:    origin.X,
		StartY:    origin.Y,
		EndX:      origin.X,
		EndY:      origin.Y,
		Color:     st.Color,
		LineWidth: st.LineWidth,
	}
}

// NewRectangle starts a rectangle drag at origin with zero extent.
func NewRectangle(origin Point, st Style) *Rectangle {
	return &Rectangle{
		ID:        uuid.NewString(),
		X:         origin.X,
		Y:         origin.Y,
		Color:     st.Color,
		LineWidth: st.LineWidth,
		Filled:    st.Filled,
	}
}

// NewEllipse starts an ellipse drag at origin with zero radii.
func NewEllipse(origin Point, st Style) *Ellipse {
	return &Ellipse{
		ID:        uuid.NewString(),
		StartX:    origin.X,
		StartY:    origin.Y,
		CenterX:   origin.X,
		CenterY:   origin.Y,
		Color:     st.Color,
		LineWidth: st.LineWidth,
		Filled:    st.Filled,
	}
}

// NewText places a text annotation with its baseline at (x, y).
func NewText(x, y float64, text string, st Style) *Text {
	return &Text{
		ID:       uuid.NewString(),
		X:        x,
		Y:        y,
		Text:     text,
		FontSize: st.FontSize,
		Color:    st.Color,
	}
}

// NewPixelate starts a pixelation-region drag at origin with zero extent.
func NewPixelate(origin Point) *Pixelate {
	return &Pixelate{
		ID: uuid.NewString(),
		X:  origin.X,
		Y:  origin.Y,
	}
}

// Clone returns a deep, reference-distinct copy of a. Nested point slices are
// reallocated so a later mutation of the original can never reach the copy.
func Clone(a Annotation) Annotation {
	switch a := a.(type) {
	case *Stroke:
		dup := *a
		dup.Points = make([]Point, len(a.Points))
		copy(dup.Points, a.Points)
		return &dup
	case *Arrow:
		dup := *a
		return &dup
	case *Rectangle:
		dup := *a
		return &dup
	case *Ellipse:
		dup := *a
		return &dup
	case *Text:
		dup := *a
		return &dup
	case *Pixelate:
		dup := *a
		return &dup
	}
	return nil
}
