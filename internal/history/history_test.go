package history

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/scene"
)

func addText(s *scene.Scene, label string) {
	s.Append(annotation.NewText(10, 10, label, s.Style))
}

func labels(s *scene.Scene) []string {
	out := make([]string, len(s.Texts))
	for i, t := range s.Texts {
		out[i] = t.Text
	}
	return out
}

func TestSaveCountsAndIndex(t *testing.T) {
	s := scene.New()
	l := New()
	for n := 1; n <= Depth; n++ {
		addText(s, fmt.Sprintf("t%d", n))
		l.Save(s)
		if l.Len() != n || l.Index() != n-1 {
			t.Fatalf("after %d saves: len=%d index=%d", n, l.Len(), l.Index())
		}
	}
}

func TestEvictionPastDepth(t *testing.T) {
	s := scene.New()
	l := New()
	for n := 1; n <= Depth+1; n++ {
		addText(s, fmt.Sprintf("t%d", n))
		l.Save(s)
	}
	if l.Len() != Depth {
		t.Fatalf("len = %d, want %d", l.Len(), Depth)
	}
	// Undo to the oldest retained entry: t1 must be gone, t2 the floor.
	for l.Undo(s) {
	}
	got := labels(s)
	if len(got) != 2 || got[0] != "t1" || got[1] != "t2" {
		t.Fatalf("oldest retained entry = %v", got)
	}
	if l.Index() != 0 {
		t.Fatalf("index = %d after exhausting undo", l.Index())
	}
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	s := scene.New()
	l := New()
	l.Save(s) // initial empty state
	addText(s, "a")
	l.Save(s)
	addText(s, "b")
	l.Save(s)

	before := s.Document()
	if !l.Undo(s) {
		t.Fatal("undo failed")
	}
	if got := labels(s); len(got) != 1 || got[0] != "a" {
		t.Fatalf("after undo: %v", got)
	}
	if !l.Redo(s) {
		t.Fatal("redo failed")
	}
	if !reflect.DeepEqual(s.Document(), before) {
		t.Fatalf("redo did not restore the pre-undo state")
	}
}

func TestSaveAfterUndoDiscardsRedoTail(t *testing.T) {
	s := scene.New()
	l := New()
	l.Save(s)
	addText(s, "a")
	l.Save(s)
	addText(s, "b")
	l.Save(s)

	l.Undo(s) // back to just "a"
	addText(s, "c")
	l.Save(s)

	if l.Redo(s) {
		t.Fatal("redo should be a no-op after a post-undo save")
	}
	if got := labels(s); len(got) != 2 || got[1] != "c" {
		t.Fatalf("scene after branch discard: %v", got)
	}
}

func TestUndoAtOldestIsNoOp(t *testing.T) {
	s := scene.New()
	l := New()
	l.Save(s)
	if l.Undo(s) {
		t.Fatal("undo at the only entry should be a no-op")
	}
	if l.Redo(s) {
		t.Fatal("redo at the newest entry should be a no-op")
	}
}

func TestSnapshotsAreIndependentOfLaterMutation(t *testing.T) {
	s := scene.New()
	l := New()
	stroke := annotation.NewStroke(annotation.Point{X: 1, Y: 1}, s.Style)
	s.Append(stroke)
	l.Save(s)
	stroke.Points[0].X = 400
	addText(s, "later")
	l.Save(s)

	l.Undo(s)
	if s.Strokes[0].Points[0].X != 1 {
		t.Fatalf("stored snapshot was corrupted by a later mutation: %v", s.Strokes[0].Points[0])
	}
}
