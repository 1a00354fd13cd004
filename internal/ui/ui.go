// Package ui runs the interactive annotation window on shiny. It owns the
// event loop and the view transform; pointer coordinates are converted to
// image space before the editor sees them, so everything below this package
// works in native image pixels.
package ui

import (
	"context"
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/draft"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/notify"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
)

const (
	titleHeight  = 24
	bottomHeight = 24
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// frameEvent carries a deferred callback onto the event loop. The editor's
// preview coalescing hands these out at most one per frame.
type frameEvent struct {
	fn func()
}

// App holds the window session configuration.
type App struct {
	Base   *image.RGBA
	Scene  *scene.Scene
	Output string
	Theme  *theme.Theme

	Shadow   bool
	Drafts   *draft.Store
	Notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithImage sets the base raster displayed under the annotations.
func WithImage(img *image.RGBA) Option { return func(a *App) { a.Base = img } }

// WithScene sets the annotation scene edited by the session.
func WithScene(sc *scene.Scene) Option { return func(a *App) { a.Scene = sc } }

// WithOutput sets the file path used when saving.
func WithOutput(out string) Option { return func(a *App) { a.Output = out } }

// WithTheme sets the color theme for the window chrome.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithShadow enables the drop shadow decoration on export.
func WithShadow(on bool) Option { return func(a *App) { a.Shadow = on } }

// WithDraftStore enables debounced draft autosave on every scene mutation.
func WithDraftStore(st *draft.Store) Option { return func(a *App) { a.Drafts = st } }

// WithNotifier enables desktop notifications for save and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{}
	for _, o := range opts {
		o(a)
	}
	if a.Scene == nil {
		a.Scene = scene.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	base := a.Base
	sc := a.Scene
	th := a.Theme
	output := a.Output

	bar := newToolbar(th, sc)

	width := base.Bounds().Dx() + bar.width
	height := base.Bounds().Dy() + titleHeight + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "SnapMark"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	// canvas is the scene rendered at native resolution; the paint loop only
	// scales it into the window.
	canvas := image.NewRGBA(image.Rect(0, 0, base.Bounds().Dx(), base.Bounds().Dy()))

	var message string
	var messageUntil time.Time
	say := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	scheduleDraft := func() {
		if a.Drafts != nil {
			a.Drafts.Schedule(sc.Document())
		}
	}

	hooks := editor.Hooks{
		Repaint: func() {
			render.Redraw(canvas, base, sc)
			scheduleDraft()
			w.Send(paint.Event{})
		},
		Segment: func(s *annotation.Stroke) {
			render.Segment(canvas, s)
			w.Send(paint.Event{})
		},
		Preview: func(an annotation.Annotation) {
			render.Preview(canvas, base, sc, an)
			w.Send(paint.Event{})
		},
	}
	ed := editor.New(sc, render.MeasureText, hooks, func(fn func()) {
		w.Send(frameEvent{fn: fn})
	})

	zoom := fitZoom(base, bar.width, width, height)
	var offset image.Point

	render.Redraw(canvas, base, sc)

	saveScene := func() {
		if output == "" {
			say("no output path configured")
			return
		}
		img := export.Image(base, sc, export.Options{Shadow: a.Shadow})
		if err := export.Save(output, img); err != nil {
			log.Printf("save: %v", err)
			return
		}
		say("saved " + output)
		if a.Notifier != nil {
			a.Notifier.Save(output)
		}
	}

	copyScene := func() {
		img := export.Image(base, sc, export.Options{Shadow: a.Shadow})
		if err := export.ToClipboard(img); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		say("image copied to clipboard")
		if a.Notifier != nil {
			a.Notifier.Copy(output)
		}
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()
	cancelPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	actions := map[string]func(){
		"undo": ed.Undo,
		"redo": ed.Redo,
		"save": saveScene,
		"copy": copyScene,
		"quit": func() { w.Send(lifecycle.Event{To: lifecycle.StageDead}) },
		"textdone": func() {
			ed.ConfirmText()
			scheduleDraft()
		},
		"textcancel": ed.CancelText,
	}
	handleShortcut := func(name string) {
		if fn, ok := actions[name]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case frameEvent:
			if e.fn != nil {
				e.fn()
			}
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				cancelPaint()
				if a.Drafts != nil {
					if err := a.Drafts.Flush(sc.Document()); err != nil {
						log.Printf("draft flush: %v", err)
					}
				}
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				ed.PointerLeave()
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			selBounds, selected := ed.SelectionBounds()
			text, textPos, textActive := ed.TextEntry()
			st := paintState{
				width:          width,
				height:         height,
				theme:          th,
				canvas:         canvas,
				zoom:           zoom,
				offset:         offset,
				bar:            bar,
				tool:           sc.Tool,
				style:          sc.Style,
				selected:       selected,
				selBounds:      selBounds,
				textActive:     textActive,
				textInput:      text,
				textPos:        textPos,
				message:        message,
				messageUntil:   messageUntil,
				handleShortcut: handleShortcut,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if bar.handleMouse(e, width, height, ed, w) {
				continue
			}
			dst := imageRect(canvas, bar.width, zoom, offset)
			ix := (float64(e.X) - float64(dst.Min.X)) / zoom
			iy := (float64(e.Y) - float64(dst.Min.Y)) / zoom
			switch e.Direction {
			case mouse.DirPress:
				if e.Button == mouse.ButtonLeft {
					ed.PointerDown(ix, iy)
				}
			case mouse.DirRelease:
				if e.Button == mouse.ButtonLeft {
					ed.PointerUp(ix, iy)
				}
			case mouse.DirNone:
				ed.PointerMove(ix, iy)
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if ed.TextActive() {
				switch e.Code {
				case key.CodeReturnEnter:
					handleShortcut("textdone")
				case key.CodeEscape:
					handleShortcut("textcancel")
				case key.CodeDeleteBackspace:
					ed.TextBackspace()
					w.Send(paint.Event{})
				default:
					if e.Rune > 0 {
						ed.TextInput(string(e.Rune))
						w.Send(paint.Event{})
					}
				}
				continue
			}
			if e.Modifiers&key.ModControl != 0 {
				switch unicode.ToLower(e.Rune) {
				case 'z':
					if e.Modifiers&key.ModShift != 0 {
						handleShortcut("redo")
					} else {
						handleShortcut("undo")
					}
				case 'y':
					handleShortcut("redo")
				case 's':
					handleShortcut("save")
				case 'c':
					handleShortcut("copy")
				}
				continue
			}
			switch unicode.ToLower(e.Rune) {
			case 's':
				ed.SetTool(scene.ToolSelect)
			case 'p':
				ed.SetTool(scene.ToolPen)
			case 'a':
				ed.SetTool(scene.ToolArrow)
			case 'r':
				ed.SetTool(scene.ToolRectangle)
			case 'e':
				ed.SetTool(scene.ToolEllipse)
			case 't':
				ed.SetTool(scene.ToolText)
			case 'b':
				ed.SetTool(scene.ToolBlur)
			case 'q':
				cancelPaint()
				if a.Drafts != nil {
					if err := a.Drafts.Flush(sc.Document()); err != nil {
						log.Printf("draft flush: %v", err)
					}
				}
				return
			case '+', '=':
				zoom *= 1.25
				w.Send(paint.Event{})
			case '-':
				zoom /= 1.25
				if zoom < 0.1 {
					zoom = 0.1
				}
				w.Send(paint.Event{})
			case -1:
				switch e.Code {
				case key.CodeLeftArrow:
					offset.X -= 10
					w.Send(paint.Event{})
				case key.CodeRightArrow:
					offset.X += 10
					w.Send(paint.Event{})
				case key.CodeUpArrow:
					offset.Y -= 10
					w.Send(paint.Event{})
				case key.CodeDownArrow:
					offset.Y += 10
					w.Send(paint.Event{})
				}
			}
		}
	}
}
