// Package editor runs the pointer and keyboard state machine that turns
// input events into scene mutations, history snapshots, and repaint
// requests. All methods must be called from the one goroutine that owns the
// scene and the drawing surface; the package holds no locks.
package editor

import (
	"strings"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/history"
	"github.com/example/snapmark/internal/hittest"
	"github.com/example/snapmark/internal/scene"
)

// Commit thresholds below which a drawing gesture is discarded silently.
const (
	minArrowLength = 5
	minBoxExtent   = 10
	minRadiusSum   = 5
)

// Hooks are the editor's outgoing repaint channels. Repaint redraws the
// whole scene plus selection chrome; Segment paints only a stroke's newest
// segment; Preview repaints the scene with one uncommitted annotation on
// top. Nil hooks are skipped.
type Hooks struct {
	Repaint func()
	Segment func(*annotation.Stroke)
	Preview func(annotation.Annotation)
}

type dragMode int

const (
	dragNone dragMode = iota
	dragMove
	dragResize
)

// Editor owns one editing session over a scene.
type Editor struct {
	Scene   *scene.Scene
	History *history.Log

	hooks    Hooks
	schedule func(func())
	measure  annotation.Measurer

	// One in-progress annotation at most; promoted into its scene list only
	// when the gesture crosses its commit threshold.
	drawing annotation.Annotation
	pending annotation.Point
	queued  bool

	sel      hittest.Hit
	selected bool

	drag       dragMode
	handle     hittest.Handle
	dragStart  annotation.Point
	last       annotation.Point
	origBounds annotation.Rect
	resizeBase annotation.Annotation

	textActive bool
	textBuf    strings.Builder
	textPos    annotation.Point
}

// New starts a session over sc. measure supplies text metrics for bounds and
// hit tests. schedule defers a function to the next display frame; the
// editor hands it at most one callback at a time to coalesce preview
// redraws, and a nil schedule runs callbacks immediately. The session's
// starting state is snapshotted so the first mutation can be undone back to
// it.
func New(sc *scene.Scene, measure annotation.Measurer, hooks Hooks, schedule func(func())) *Editor {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	e := &Editor{
		Scene:    sc,
		History:  history.New(),
		hooks:    hooks,
		schedule: schedule,
		measure:  measure,
	}
	e.History.Save(sc)
	return e
}

// SetTool switches the active tool. An open text entry is force-confirmed
// first, an in-progress drawing gesture is abandoned, and leaving the select
// tool clears the selection.
func (e *Editor) SetTool(t scene.Tool) {
	if e.textActive {
		e.ConfirmText()
	}
	e.drawing = nil
	e.queued = false
	e.drag = dragNone
	if t != scene.ToolSelect {
		e.selected = false
	}
	e.Scene.Tool = t
	e.repaint()
}

// Undo steps the scene back one history entry. Selection is cleared because
// stored indices may point at replaced instances.
func (e *Editor) Undo() {
	if !e.History.Undo(e.Scene) {
		return
	}
	e.selected = false
	e.drag = dragNone
	e.drawing = nil
	e.queued = false
	e.repaint()
}

// Redo steps the scene forward one history entry.
func (e *Editor) Redo() {
	if !e.History.Redo(e.Scene) {
		return
	}
	e.selected = false
	e.drag = dragNone
	e.drawing = nil
	e.queued = false
	e.repaint()
}

// Selection returns the current selection, if any.
func (e *Editor) Selection() (hittest.Hit, bool) {
	if !e.selected || e.Scene.At(e.sel.Kind, e.sel.Index) == nil {
		return hittest.Hit{}, false
	}
	return e.sel, true
}

// SelectionBounds returns the selected annotation's bounds for chrome
// drawing.
func (e *Editor) SelectionBounds() (annotation.Rect, bool) {
	if !e.selected {
		return annotation.Rect{}, false
	}
	a := e.Scene.At(e.sel.Kind, e.sel.Index)
	if a == nil {
		return annotation.Rect{}, false
	}
	return annotation.Bounds(a, e.measure), true
}

// TextActive reports whether the inline text entry is open; keyboard
// shortcuts are suppressed while it is.
func (e *Editor) TextActive() bool { return e.textActive }

// TextEntry returns the open entry's content and anchor for overlay drawing.
func (e *Editor) TextEntry() (text string, pos annotation.Point, ok bool) {
	if !e.textActive {
		return "", annotation.Point{}, false
	}
	return e.textBuf.String(), e.textPos, true
}

func (e *Editor) repaint() {
	if e.hooks.Repaint != nil {
		e.hooks.Repaint()
	}
}
