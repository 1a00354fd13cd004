package scene

import "github.com/example/snapmark/internal/annotation"

// Document is the plain-data form of a scene's annotation lists, the shape
// handed to the draft store. It carries fields only, no behavior; a missing
// list deserializes as empty.
type Document struct {
	Strokes    []annotation.Stroke    `json:"strokes"`
	Arrows     []annotation.Arrow     `json:"arrows"`
	Rectangles []annotation.Rectangle `json:"rectangles"`
	Ellipses   []annotation.Ellipse   `json:"ellipses"`
	Texts      []annotation.Text      `json:"texts"`
	Pixelates  []annotation.Pixelate  `json:"pixelates"`
}

// Document flattens the scene into its plain-data form. The returned values
// are copies; mutating them does not touch the scene.
func (s *Scene) Document() Document {
	doc := Document{
		Strokes:    make([]annotation.Stroke, len(s.Strokes)),
		Arrows:     make([]annotation.Arrow, len(s.Arrows)),
		Rectangles: make([]annotation.Rectangle, len(s.Rectangles)),
		Ellipses:   make([]annotation.Ellipse, len(s.Ellipses)),
		Texts:      make([]annotation.Text, len(s.Texts)),
		Pixelates:  make([]annotation.Pixelate, len(s.Pixelates)),
	}
	for i, a := range s.Strokes {
		doc.Strokes[i] = *annotation.Clone(a).(*annotation.Stroke)
	}
	for i, a := range s.Arrows {
		doc.Arrows[i] = *a
	}
	for i, a := range s.Rectangles {
		doc.Rectangles[i] = *a
	}
	for i, a := range s.Ellipses {
		doc.Ellipses[i] = *a
	}
	for i, a := range s.Texts {
		doc.Texts[i] = *a
	}
	for i, a := range s.Pixelates {
		doc.Pixelates[i] = *a
	}
	return doc
}

// LoadDocument replaces the scene's annotation lists with typed instances
// rebuilt from doc. Tool and style settings are left alone; a failed or
// partial document never corrupts them.
func (s *Scene) LoadDocument(doc Document) {
	s.Strokes = make([]*annotation.Stroke, 0, len(doc.Strokes))
	for i := range doc.Strokes {
		s.Strokes = append(s.Strokes, annotation.Clone(&doc.Strokes[i]).(*annotation.Stroke))
	}
	s.Arrows = make([]*annotation.Arrow, 0, len(doc.Arrows))
	for i := range doc.Arrows {
		a := doc.Arrows[i]
		s.Arrows = append(s.Arrows, &a)
	}
	s.Rectangles = make([]*annotation.Rectangle, 0, len(doc.Rectangles))
	for i := range doc.Rectangles {
		a := doc.Rectangles[i]
		s.Rectangles = append(s.Rectangles, &a)
	}
	s.Ellipses = make([]*annotation.Ellipse, 0, len(doc.Ellipses))
	for i := range doc.Ellipses {
		a := doc.Ellipses[i]
		s.Ellipses = append(s.Ellipses, &a)
	}
	s.Texts = make([]*annotation.Text, 0, len(doc.Texts))
	for i := range doc.Texts {
		a := doc.Texts[i]
		s.Texts = append(s.Texts, &a)
	}
	s.Pixelates = make([]*annotation.Pixelate, 0, len(doc.Pixelates))
	for i := range doc.Pixelates {
		a := doc.Pixelates[i]
		s.Pixelates = append(s.Pixelates, &a)
	}
}
