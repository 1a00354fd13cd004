package draft

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/scene"
)

func sampleDocument() scene.Document {
	sc := scene.New()
	st := scene.DefaultStyle()
	stroke := annotation.NewStroke(annotation.Point{X: 1, Y: 2}, st)
	stroke.AppendPoint(annotation.Point{X: 3, Y: 4})
	sc.Append(stroke)
	sc.Append(annotation.NewText(10, 20, "draft", st))
	return sc.Document()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), time.Minute)
	doc := sampleDocument()
	if err := s.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored draft")
	}
	if !reflect.DeepEqual(doc, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", doc, got)
	}
}

func TestLoadMissingDraft(t *testing.T) {
	s := NewStore(t.TempDir(), time.Minute)
	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("missing draft must report ok=false")
	}
}

func TestScheduleDebounces(t *testing.T) {
	s := NewStore(t.TempDir(), 50*time.Millisecond)
	doc := sampleDocument()
	s.Schedule(scene.Document{})
	s.Schedule(doc)

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, ok, err := s.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if ok {
			if len(got.Strokes) != 1 || len(got.Texts) != 1 {
				t.Fatalf("expected the rescheduled document, got %+v", got)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("scheduled save never landed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	s := NewStore(t.TempDir(), time.Hour)
	s.Schedule(scene.Document{})
	if err := s.Flush(sampleDocument()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("load after flush: ok=%v err=%v", ok, err)
	}
	if len(got.Strokes) != 1 {
		t.Fatal("flush should write the given document")
	}
}

func TestClearRemovesDraft(t *testing.T) {
	s := NewStore(t.TempDir(), time.Minute)
	if err := s.Save(sampleDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatal("draft file should be gone")
	}
	if err := s.Clear(); err != nil {
		t.Fatal("clearing an absent draft must be a no-op")
	}
}
