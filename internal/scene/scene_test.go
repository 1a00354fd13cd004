package scene

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/example/snapmark/internal/annotation"
)

func sampleScene() *Scene {
	s := New()
	stroke := annotation.NewStroke(annotation.Point{X: 1, Y: 2}, s.Style)
	stroke.AppendPoint(annotation.Point{X: 3, Y: 4})
	s.Append(stroke)
	arrow := annotation.NewArrow(annotation.Point{X: 0, Y: 0}, s.Style)
	annotation.SetEnd(arrow, 50, 60)
	s.Append(arrow)
	rect := annotation.NewRectangle(annotation.Point{X: 10, Y: 10}, s.Style)
	annotation.SetEnd(rect, 110, 80)
	s.Append(rect)
	s.Append(annotation.NewText(40, 40, "hi", s.Style))
	px := annotation.NewPixelate(annotation.Point{X: 5, Y: 5})
	annotation.SetEnd(px, 65, 45)
	s.Append(px)
	return s
}

func TestSnapshotIsolation(t *testing.T) {
	s := sampleScene()
	snap := s.Snapshot()
	s.Strokes[0].Points[0].X = 999
	s.Rectangles[0].Width = -1
	if snap.Strokes[0].Points[0].X != 1 {
		t.Fatalf("snapshot shares stroke points with the live scene")
	}
	if snap.Rectangles[0].Width != 100 {
		t.Fatalf("snapshot shares rectangle storage with the live scene")
	}
}

func TestRestoreIsolation(t *testing.T) {
	s := sampleScene()
	snap := s.Snapshot()
	s.Restore(snap)
	s.Strokes[0].Points[1].Y = -5
	if snap.Strokes[0].Points[1].Y != 4 {
		t.Fatalf("restore aliased the snapshot's storage")
	}
}

func TestAtRevalidatesIndex(t *testing.T) {
	s := sampleScene()
	if s.At(annotation.KindArrow, 0) == nil {
		t.Fatal("expected arrow at index 0")
	}
	if s.At(annotation.KindArrow, 5) != nil {
		t.Fatal("out-of-range index should resolve to nil")
	}
	if s.At(annotation.KindEllipse, 0) != nil {
		t.Fatal("empty list should resolve to nil")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := sampleScene()
	data, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored := New()
	restored.LoadDocument(doc)
	if !reflect.DeepEqual(restored.Document(), s.Document()) {
		t.Fatalf("document round trip diverged")
	}
}

func TestLoadDocumentDefaultsMissingLists(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"arrows":[{"id":"a","endX":9}]}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := New()
	s.LoadDocument(doc)
	if len(s.Arrows) != 1 || s.Arrows[0].EndX != 9 {
		t.Fatalf("arrow list not restored: %+v", s.Arrows)
	}
	if len(s.Strokes) != 0 || len(s.Texts) != 0 {
		t.Fatalf("missing lists should restore empty")
	}
}
