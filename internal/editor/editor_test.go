package editor

import (
	"testing"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/scene"
)

func fixedMeasure(text string, size float64) (float64, float64) {
	return float64(len(text)) * 10, size
}

func newTestEditor() *Editor {
	return New(scene.New(), fixedMeasure, Hooks{}, nil)
}

func drawRect(t *testing.T, e *Editor, x0, y0, x1, y1 float64) {
	t.Helper()
	e.SetTool(scene.ToolRectangle)
	e.PointerDown(x0, y0)
	e.PointerMove(x1, y1)
	e.PointerUp(x1, y1)
	if len(e.Scene.Rectangles) == 0 {
		t.Fatal("rectangle gesture did not commit")
	}
}

func TestRectangleResizeThenUndoRestoresBounds(t *testing.T) {
	e := newTestEditor()
	drawRect(t, e, 100, 100, 300, 250)

	e.SetTool(scene.ToolSelect)
	e.PointerDown(200, 175)
	e.PointerUp(200, 175)
	if _, ok := e.Selection(); !ok {
		t.Fatal("click inside rectangle did not select it")
	}

	// Grab the south-east handle and drag it out by (50, 50).
	e.PointerDown(300, 250)
	e.PointerMove(350, 300)
	e.PointerUp(350, 300)

	b, ok := e.SelectionBounds()
	if !ok {
		t.Fatal("selection lost after resize")
	}
	want := annotation.Rect{X: 100, Y: 100, Width: 250, Height: 200}
	if b != want {
		t.Fatalf("resized bounds %+v, want %+v", b, want)
	}

	e.Undo()
	r := e.Scene.Rectangles[0]
	got := annotation.Bounds(r, nil)
	orig := annotation.Rect{X: 100, Y: 100, Width: 200, Height: 150}
	if got != orig {
		t.Fatalf("undo restored bounds %+v, want %+v", got, orig)
	}
}

func TestArrowCommitThreshold(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolArrow)
	saved := e.History.Len()

	e.PointerDown(10, 10)
	e.PointerMove(14, 10)
	e.PointerUp(14, 10)
	if len(e.Scene.Arrows) != 0 {
		t.Fatal("4px arrow should be discarded")
	}
	if e.History.Len() != saved {
		t.Fatal("discarded gesture must not save history")
	}

	e.PointerDown(10, 10)
	e.PointerMove(16, 10)
	e.PointerUp(16, 10)
	if len(e.Scene.Arrows) != 1 {
		t.Fatal("6px arrow should be committed")
	}
	if e.History.Len() != saved+1 {
		t.Fatal("committed gesture must save history once")
	}
}

func TestPreviewCoalescesToOnePerFrame(t *testing.T) {
	var frame []func()
	var previews []annotation.Annotation
	e := New(scene.New(), fixedMeasure, Hooks{
		Preview: func(a annotation.Annotation) { previews = append(previews, a) },
	}, func(fn func()) { frame = append(frame, fn) })

	e.SetTool(scene.ToolRectangle)
	e.PointerDown(0, 0)
	e.PointerMove(10, 10)
	e.PointerMove(20, 20)
	e.PointerMove(30, 30)
	if len(frame) != 1 {
		t.Fatalf("expected one scheduled preview, got %d", len(frame))
	}

	frame[0]()
	if len(previews) != 1 {
		t.Fatalf("expected one preview draw, got %d", len(previews))
	}
	r := previews[0].(*annotation.Rectangle)
	if r.Width != 30 || r.Height != 30 {
		t.Fatalf("preview should use the newest coordinate, got %vx%v", r.Width, r.Height)
	}
}

func TestPendingPreviewCancelledOnUp(t *testing.T) {
	var frame []func()
	var previews int
	e := New(scene.New(), fixedMeasure, Hooks{
		Preview: func(annotation.Annotation) { previews++ },
	}, func(fn func()) { frame = append(frame, fn) })

	e.SetTool(scene.ToolEllipse)
	e.PointerDown(0, 0)
	e.PointerMove(40, 40)
	e.PointerUp(40, 40)
	for _, fn := range frame {
		fn()
	}
	if previews != 0 {
		t.Fatal("pending preview should be cancelled by pointer up")
	}
	if len(e.Scene.Ellipses) != 1 {
		t.Fatal("ellipse gesture should still commit")
	}
}

func TestPenDrawsIncrementally(t *testing.T) {
	var segments int
	e := New(scene.New(), fixedMeasure, Hooks{
		Segment: func(*annotation.Stroke) { segments++ },
	}, nil)

	e.SetTool(scene.ToolPen)
	e.PointerDown(5, 5)
	e.PointerMove(10, 10)
	e.PointerMove(15, 15)
	e.PointerUp(15, 15)

	if segments != 3 {
		t.Fatalf("expected a segment draw per sample, got %d", segments)
	}
	if len(e.Scene.Strokes) != 1 || len(e.Scene.Strokes[0].Points) != 3 {
		t.Fatal("stroke should commit with every sampled point")
	}
}

func TestSinglePointStrokeCommits(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolPen)
	e.PointerDown(5, 5)
	e.PointerUp(5, 5)
	if len(e.Scene.Strokes) != 1 {
		t.Fatal("a click with the pen commits a one-point stroke")
	}
}

func TestMoveDragTranslatesSelection(t *testing.T) {
	e := newTestEditor()
	drawRect(t, e, 10, 10, 60, 60)

	e.SetTool(scene.ToolSelect)
	e.PointerDown(30, 30)
	e.PointerMove(40, 35)
	e.PointerMove(50, 40)
	e.PointerUp(50, 40)

	r := e.Scene.Rectangles[0]
	if r.X != 30 || r.Y != 20 {
		t.Fatalf("move drag landed at (%v,%v), want (30,20)", r.X, r.Y)
	}
}

func TestStrokeResizeScalesFromFrozenOriginal(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolPen)
	e.PointerDown(100, 100)
	e.PointerMove(200, 200)
	e.PointerUp(200, 200)

	e.SetTool(scene.ToolSelect)
	e.PointerDown(150, 150)
	e.PointerUp(150, 150)
	if _, ok := e.Selection(); !ok {
		t.Fatal("stroke not selected")
	}

	// Two incremental adjustments of the same drag must equal one jump to
	// the final position.
	e.PointerDown(200, 200)
	e.PointerMove(250, 250)
	e.PointerMove(300, 300)
	e.PointerUp(300, 300)

	s := e.Scene.Strokes[0]
	last := s.Points[len(s.Points)-1]
	if last.X != 300 || last.Y != 300 {
		t.Fatalf("stroke end at (%v,%v), want (300,300)", last.X, last.Y)
	}
	if s.Points[0].X != 100 || s.Points[0].Y != 100 {
		t.Fatalf("stroke start moved to (%v,%v)", s.Points[0].X, s.Points[0].Y)
	}
}

func TestPointerLeaveAbandonsDrawing(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolRectangle)
	saved := e.History.Len()

	e.PointerDown(10, 10)
	e.PointerMove(80, 80)
	e.PointerLeave()
	e.PointerUp(80, 80)

	if len(e.Scene.Rectangles) != 0 {
		t.Fatal("leaving the surface must abandon the gesture")
	}
	if e.History.Len() != saved {
		t.Fatal("abandoned gesture must not save history")
	}
}

func TestPointerLeaveKeepsSelectDrag(t *testing.T) {
	e := newTestEditor()
	drawRect(t, e, 10, 10, 60, 60)

	e.SetTool(scene.ToolSelect)
	e.PointerDown(30, 30)
	e.PointerLeave()
	e.PointerMove(40, 40)
	e.PointerUp(40, 40)

	r := e.Scene.Rectangles[0]
	if r.X != 20 || r.Y != 20 {
		t.Fatalf("select drag should survive pointer leave, rect at (%v,%v)", r.X, r.Y)
	}
}

func TestTextEntryCommitAndCancel(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolText)
	e.PointerDown(50, 60)
	if !e.TextActive() {
		t.Fatal("text click should open the entry")
	}
	e.TextInput("note")
	e.TextBackspace()
	e.ConfirmText()

	if len(e.Scene.Texts) != 1 {
		t.Fatal("confirm with content should commit")
	}
	txt := e.Scene.Texts[0]
	if txt.Text != "not" {
		t.Fatalf("committed %q, want %q", txt.Text, "not")
	}
	wantY := 60 + annotation.TextBaseline()*e.Scene.Style.FontSize
	if txt.X != 50 || txt.Y != wantY {
		t.Fatalf("anchor (%v,%v), want (50,%v)", txt.X, txt.Y, wantY)
	}

	e.PointerDown(80, 80)
	e.TextInput("discard me")
	e.CancelText()
	if len(e.Scene.Texts) != 1 {
		t.Fatal("cancel must not commit")
	}
}

func TestEmptyTextConfirmIsNoOp(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolText)
	saved := e.History.Len()
	e.PointerDown(10, 10)
	e.TextInput("   ")
	e.ConfirmText()
	if len(e.Scene.Texts) != 0 {
		t.Fatal("whitespace-only entry must not commit")
	}
	if e.History.Len() != saved {
		t.Fatal("cancelled entry must not save history")
	}
}

func TestToolSwitchForceConfirmsText(t *testing.T) {
	e := newTestEditor()
	e.SetTool(scene.ToolText)
	e.PointerDown(10, 10)
	e.TextInput(" hello ")
	e.SetTool(scene.ToolPen)

	if e.TextActive() {
		t.Fatal("tool switch should close the entry")
	}
	if len(e.Scene.Texts) != 1 || e.Scene.Texts[0].Text != "hello" {
		t.Fatalf("tool switch should commit trimmed text, got %v", e.Scene.Texts)
	}
}

func TestLeavingSelectClearsSelection(t *testing.T) {
	e := newTestEditor()
	drawRect(t, e, 10, 10, 60, 60)
	e.SetTool(scene.ToolSelect)
	e.PointerDown(30, 30)
	e.PointerUp(30, 30)
	if _, ok := e.Selection(); !ok {
		t.Fatal("expected a selection")
	}
	e.SetTool(scene.ToolPen)
	if _, ok := e.Selection(); ok {
		t.Fatal("leaving select must clear the selection")
	}
}

func TestUndoClearsSelectionAndRedoRestores(t *testing.T) {
	e := newTestEditor()
	drawRect(t, e, 10, 10, 60, 60)
	e.SetTool(scene.ToolSelect)
	e.PointerDown(30, 30)
	e.PointerUp(30, 30)

	e.Undo()
	if _, ok := e.Selection(); ok {
		t.Fatal("undo must clear the selection")
	}

	e.Redo()
	if len(e.Scene.Rectangles) != 1 {
		t.Fatal("redo should restore the rectangle")
	}
}

func TestClickOnNothingClearsSelection(t *testing.T) {
	e := newTestEditor()
	drawRect(t, e, 10, 10, 60, 60)
	e.SetTool(scene.ToolSelect)
	e.PointerDown(30, 30)
	e.PointerUp(30, 30)
	e.PointerDown(500, 500)
	e.PointerUp(500, 500)
	if _, ok := e.Selection(); ok {
		t.Fatal("clicking empty space must clear the selection")
	}
}
