// Package scene holds the authoritative state of one editing session: the
// per-kind annotation lists, the current in-progress annotation, the active
// selection and the current tool and style settings. Every other component
// reads and writes through it. List position defines render order within a
// kind; lists are append-only (older first).
package scene

import (
	"image/color"

	"github.com/example/snapmark/internal/annotation"
)

// Tool identifies the active editing tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPen
	ToolArrow
	ToolRectangle
	ToolEllipse
	ToolText
	ToolBlur
)

var toolNames = map[Tool]string{
	ToolSelect:    "select",
	ToolPen:       "pen",
	ToolArrow:     "arrow",
	ToolRectangle: "rectangle",
	ToolEllipse:   "ellipse",
	ToolText:      "text",
	ToolBlur:      "blur",
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseTool maps a tool name back to its Tool value.
func ParseTool(name string) (Tool, bool) {
	for t, n := range toolNames {
		if n == name {
			return t, true
		}
	}
	return ToolSelect, false
}

// DefaultStyle is applied to fresh sessions until the settings surface says
// otherwise.
func DefaultStyle() annotation.Style {
	return annotation.Style{
		Color:     color.RGBA{R: 255, A: 255},
		LineWidth: 4,
		FontSize:  16,
	}
}

// Scene is created once per editing session (image load) and lives until the
// session ends or a draft restore replaces its contents. It is owned by a
// single goroutine; all access is synchronous.
type Scene struct {
	Strokes    []*annotation.Stroke
	Arrows     []*annotation.Arrow
	Rectangles []*annotation.Rectangle
	Ellipses   []*annotation.Ellipse
	Texts      []*annotation.Text
	Pixelates  []*annotation.Pixelate

	Tool  Tool
	Style annotation.Style
}

// New returns an empty scene with default settings.
func New() *Scene {
	return &Scene{Tool: ToolSelect, Style: DefaultStyle()}
}

// Append commits a to the end of its kind's list, making it the topmost of
// its kind.
func (s *Scene) Append(a annotation.Annotation) {
	switch a := a.(type) {
	case *annotation.Stroke:
		s.Strokes = append(s.Strokes, a)
	case *annotation.Arrow:
		s.Arrows = append(s.Arrows, a)
	case *annotation.Rectangle:
		s.Rectangles = append(s.Rectangles, a)
	case *annotation.Ellipse:
		s.Ellipses = append(s.Ellipses, a)
	case *annotation.Text:
		s.Texts = append(s.Texts, a)
	case *annotation.Pixelate:
		s.Pixelates = append(s.Pixelates, a)
	}
}

// Len reports the number of annotations of kind k.
func (s *Scene) Len(k annotation.Kind) int {
	switch k {
	case annotation.KindStroke:
		return len(s.Strokes)
	case annotation.KindArrow:
		return len(s.Arrows)
	case annotation.KindRectangle:
		return len(s.Rectangles)
	case annotation.KindEllipse:
		return len(s.Ellipses)
	case annotation.KindText:
		return len(s.Texts)
	case annotation.KindPixelate:
		return len(s.Pixelates)
	}
	return 0
}

// At resolves the annotation of kind k at list index i, or nil when the
// index no longer points into the list. Selections store kind and index and
// re-resolve through here on every access, so a stale index after an
// undo/redo is caught instead of aliasing a replaced instance.
func (s *Scene) At(k annotation.Kind, i int) annotation.Annotation {
	if i < 0 || i >= s.Len(k) {
		return nil
	}
	switch k {
	case annotation.KindStroke:
		return s.Strokes[i]
	case annotation.KindArrow:
		return s.Arrows[i]
	case annotation.KindRectangle:
		return s.Rectangles[i]
	case annotation.KindEllipse:
		return s.Ellipses[i]
	case annotation.KindText:
		return s.Texts[i]
	case annotation.KindPixelate:
		return s.Pixelates[i]
	}
	return nil
}

// Replace swaps the annotation of kind k at index i for a. It is a no-op
// when the index is out of range or a's kind does not match k.
func (s *Scene) Replace(k annotation.Kind, i int, a annotation.Annotation) {
	if i < 0 || i >= s.Len(k) || a == nil || a.Kind() != k {
		return
	}
	switch a := a.(type) {
	case *annotation.Stroke:
		s.Strokes[i] = a
	case *annotation.Arrow:
		s.Arrows[i] = a
	case *annotation.Rectangle:
		s.Rectangles[i] = a
	case *annotation.Ellipse:
		s.Ellipses[i] = a
	case *annotation.Text:
		s.Texts[i] = a
	case *annotation.Pixelate:
		s.Pixelates[i] = a
	}
}

// Empty reports whether the scene carries no annotations at all.
func (s *Scene) Empty() bool {
	return len(s.Strokes) == 0 && len(s.Arrows) == 0 && len(s.Rectangles) == 0 &&
		len(s.Ellipses) == 0 && len(s.Texts) == 0 && len(s.Pixelates) == 0
}

// Snapshot is one fully deep-copied set of all six annotation lists. Every
// instance inside is reference-distinct from the live scene, so a later
// mutation can never corrupt a stored entry.
type Snapshot struct {
	Strokes    []*annotation.Stroke
	Arrows     []*annotation.Arrow
	Rectangles []*annotation.Rectangle
	Ellipses   []*annotation.Ellipse
	Texts      []*annotation.Text
	Pixelates  []*annotation.Pixelate
}

// Snapshot deep-copies all annotation lists.
func (s *Scene) Snapshot() Snapshot {
	return Snapshot{
		Strokes:    cloneList(s.Strokes),
		Arrows:     cloneList(s.Arrows),
		Rectangles: cloneList(s.Rectangles),
		Ellipses:   cloneList(s.Ellipses),
		Texts:      cloneList(s.Texts),
		Pixelates:  cloneList(s.Pixelates),
	}
}

// Restore replaces the live lists with deep copies of snap. Copying again on
// the way out keeps the history entry isolated from whatever the session
// mutates next.
func (s *Scene) Restore(snap Snapshot) {
	s.Strokes = cloneList(snap.Strokes)
	s.Arrows = cloneList(snap.Arrows)
	s.Rectangles = cloneList(snap.Rectangles)
	s.Ellipses = cloneList(snap.Ellipses)
	s.Texts = cloneList(snap.Texts)
	s.Pixelates = cloneList(snap.Pixelates)
}

func cloneList[T annotation.Annotation](list []T) []T {
	out := make([]T, len(list))
	for i, a := range list {
		out[i] = annotation.Clone(a).(T)
	}
	return out
}
