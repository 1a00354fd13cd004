package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
)

const (
	toolRowHeight  = 24
	swatchSize     = 16
	swatchStep     = 18
	widthRowHeight = 16
	sizeRowHeight  = 24
)

var palette = []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
	{128, 0, 0, 255},
	{0, 128, 0, 255},
	{0, 0, 128, 255},
	{128, 128, 0, 255},
	{0, 128, 128, 255},
	{128, 0, 128, 255},
	{192, 192, 192, 255},
	{128, 128, 128, 255},
}

var lineWidths = []float64{1, 2, 4, 6, 8}
var fontSizes = []float64{12, 16, 20, 24, 32}

type toolEntry struct {
	label string
	tool  scene.Tool
}

var toolEntries = []toolEntry{
	{"S:Select", scene.ToolSelect},
	{"P:Pen", scene.ToolPen},
	{"A:Arrow", scene.ToolArrow},
	{"R:Rect", scene.ToolRectangle},
	{"E:Ellipse", scene.ToolEllipse},
	{"T:Text", scene.ToolText},
	{"B:Blur", scene.ToolBlur},
}

// toolbar owns the left tool column and the bottom shortcut bar. Drawing and
// hit testing share the same layout function so the regions cannot drift
// apart.
type toolbar struct {
	theme *theme.Theme
	sc    *scene.Scene
	width int

	hoverTool     int
	hoverPalette  int
	hoverWidth    int
	hoverSize     int
	hoverFill     bool
	hoverShortcut int

	shortcutRects []shortcutButton
}

type shortcutButton struct {
	label   string
	action  string
	rect    image.Rectangle
	onClick func()
}

// toolbarLayout positions the toolbar sections for the active tool. A section
// with a zero count is absent.
type toolbarLayout struct {
	toolsY    int
	paletteY  int
	widthsY   int
	fillY     int
	sizesY    int
	hasWidths bool
	hasFill   bool
	hasSizes  bool
}

func newToolbar(th *theme.Theme, sc *scene.Scene) *toolbar {
	// Make the column wide enough for the longest label so nothing clips.
	d := &font.Drawer{Face: basicfont.Face7x13}
	width := d.MeasureString("SnapMark").Ceil() + 8
	for _, te := range toolEntries {
		if w := d.MeasureString(te.label).Ceil() + 8; w > width {
			width = w
		}
	}
	if width < 48 {
		width = 48
	}
	return &toolbar{
		theme:         th,
		sc:            sc,
		width:         width,
		hoverTool:     -1,
		hoverPalette:  -1,
		hoverWidth:    -1,
		hoverSize:     -1,
		hoverShortcut: -1,
	}
}

func (tb *toolbar) layout(tool scene.Tool) toolbarLayout {
	l := toolbarLayout{toolsY: titleHeight}
	y := titleHeight + len(toolEntries)*toolRowHeight + 4
	l.paletteY = y
	y += tb.paletteHeight() + 4
	switch tool {
	case scene.ToolPen, scene.ToolArrow, scene.ToolRectangle, scene.ToolEllipse:
		l.hasWidths = true
		l.widthsY = y
		y += len(lineWidths) * widthRowHeight
	}
	if tool == scene.ToolRectangle || tool == scene.ToolEllipse {
		l.hasFill = true
		l.fillY = y + 4
		y += toolRowHeight + 4
	}
	if tool == scene.ToolText {
		l.hasSizes = true
		l.sizesY = y
	}
	return l
}

func (tb *toolbar) paletteCols() int {
	cols := tb.width / swatchStep
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (tb *toolbar) paletteHeight() int {
	cols := tb.paletteCols()
	rows := (len(palette) + cols - 1) / cols
	return rows * swatchStep
}

// handleMouse consumes events over the toolbar column, title bar and bottom
// bar. It returns false for events belonging to the canvas.
func (tb *toolbar) handleMouse(e mouse.Event, winW, winH int, ed *editor.Editor, w screen.Window) bool {
	p := image.Point{int(e.X), int(e.Y)}
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress

	if p.Y >= winH-bottomHeight {
		tb.hoverShortcut = -1
		for i, sc := range tb.shortcutRects {
			if p.In(sc.rect) {
				tb.hoverShortcut = i
				if press {
					// The shortcut action runs via the key path; the bar
					// only records which one was clicked.
					tb.shortcutRects[i].activate(w)
				}
				break
			}
		}
		if e.Direction == mouse.DirNone {
			w.Send(paint.Event{})
		}
		return true
	}
	if p.Y < titleHeight {
		return true
	}
	if p.X >= tb.width {
		return false
	}

	l := tb.layout(tb.sc.Tool)
	tb.hoverTool = -1
	tb.hoverPalette = -1
	tb.hoverWidth = -1
	tb.hoverSize = -1
	tb.hoverFill = false

	switch {
	case p.Y < l.paletteY-4:
		idx := (p.Y - l.toolsY) / toolRowHeight
		if idx >= 0 && idx < len(toolEntries) {
			tb.hoverTool = idx
			if press {
				ed.SetTool(toolEntries[idx].tool)
			}
		}
	case p.Y < l.paletteY+tb.paletteHeight():
		cols := tb.paletteCols()
		colX := (p.X - 4) / swatchStep
		colY := (p.Y - l.paletteY) / swatchStep
		idx := colY*cols + colX
		if colX >= 0 && colX < cols && idx >= 0 && idx < len(palette) {
			tb.hoverPalette = idx
			if press {
				tb.sc.Style.Color = palette[idx]
			}
		}
	case l.hasWidths && p.Y >= l.widthsY && p.Y < l.widthsY+len(lineWidths)*widthRowHeight:
		idx := (p.Y - l.widthsY) / widthRowHeight
		if idx >= 0 && idx < len(lineWidths) {
			tb.hoverWidth = idx
			if press {
				tb.sc.Style.LineWidth = lineWidths[idx]
			}
		}
	case l.hasFill && p.Y >= l.fillY && p.Y < l.fillY+toolRowHeight:
		tb.hoverFill = true
		if press {
			tb.sc.Style.Filled = !tb.sc.Style.Filled
		}
	case l.hasSizes && p.Y >= l.sizesY && p.Y < l.sizesY+len(fontSizes)*sizeRowHeight:
		idx := (p.Y - l.sizesY) / sizeRowHeight
		if idx >= 0 && idx < len(fontSizes) {
			tb.hoverSize = idx
			if press {
				tb.sc.Style.FontSize = fontSizes[idx]
			}
		}
	}
	if e.Direction == mouse.DirNone || press {
		w.Send(paint.Event{})
	}
	return true
}

func (sb *shortcutButton) activate(w screen.Window) {
	if sb.onClick != nil {
		sb.onClick()
	}
	w.Send(paint.Event{})
}

func (tb *toolbar) draw(dst *image.RGBA, st paintState) {
	th := tb.theme

	// title bar
	draw.Draw(dst, image.Rect(0, 0, st.width, titleHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	title := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	title.DrawString("SnapMark")

	// tool column background
	draw.Draw(dst, image.Rect(0, titleHeight, tb.width, st.height-bottomHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	l := tb.layout(st.tool)
	for i, te := range toolEntries {
		r := image.Rect(0, l.toolsY+i*toolRowHeight, tb.width, l.toolsY+(i+1)*toolRowHeight)
		bg := th.ButtonBackground
		if te.tool == st.tool {
			bg = th.ButtonBackgroundPress
		} else if i == tb.hoverTool {
			bg = th.ButtonBackgroundHover
		}
		draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(r.Min.X+4, r.Min.Y+16)}
		d.DrawString(te.label)
	}

	cols := tb.paletteCols()
	for i, p := range palette {
		x := 4 + (i%cols)*swatchStep
		y := l.paletteY + (i/cols)*swatchStep
		rect := image.Rect(x, y, x+swatchSize, y+swatchSize)
		draw.Draw(dst, rect, &image.Uniform{p}, image.Point{}, draw.Src)
		if i == tb.hoverPalette {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if p == st.style.Color {
			outlineLoop(dst, rect, color.White)
		}
	}

	if l.hasWidths {
		for i, lw := range lineWidths {
			y := l.widthsY + i*widthRowHeight
			rect := image.Rect(0, y, tb.width, y+widthRowHeight)
			bg := th.ButtonBackground
			if lw == st.style.LineWidth {
				bg = th.ButtonBackgroundPress
			} else if i == tb.hoverWidth {
				bg = th.ButtonBackgroundHover
			}
			draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
				Dot: fixed.P(4, y+12)}
			d.DrawString(fmt.Sprintf("%g", lw))
			lineY := y + widthRowHeight/2
			sample := image.Rect(30, lineY-int(lw)/2, tb.width-4, lineY+(int(lw)+1)/2)
			draw.Draw(dst, sample, &image.Uniform{st.style.Color}, image.Point{}, draw.Src)
		}
	}

	if l.hasFill {
		rect := image.Rect(0, l.fillY, tb.width, l.fillY+toolRowHeight)
		bg := th.ButtonBackground
		if st.style.Filled {
			bg = th.ButtonBackgroundPress
		} else if tb.hoverFill {
			bg = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(4, l.fillY+16)}
		d.DrawString("F:Fill")
	}

	if l.hasSizes {
		for i, sz := range fontSizes {
			y := l.sizesY + i*sizeRowHeight
			rect := image.Rect(0, y, tb.width, y+sizeRowHeight)
			bg := th.ButtonBackground
			if sz == st.style.FontSize {
				bg = th.ButtonBackgroundPress
			} else if i == tb.hoverSize {
				bg = th.ButtonBackgroundHover
			}
			draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
				Dot: fixed.P(4, y+16)}
			d.DrawString(fmt.Sprintf("%gpt", sz))
		}
	}
}

func (tb *toolbar) drawShortcuts(dst *image.RGBA, st paintState) {
	th := tb.theme
	rect := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	var hints []shortcutButton
	if st.textActive {
		hints = []shortcutButton{
			{label: "Enter:place", action: "textdone"},
			{label: "Esc:cancel", action: "textcancel"},
		}
	} else {
		zoomStr := fmt.Sprintf("+/-:zoom (%.0f%%)", st.zoom*100)
		hints = []shortcutButton{
			{label: "^Z:undo", action: "undo"},
			{label: "^Y:redo", action: "redo"},
			{label: "^C:copy", action: "copy"},
			{label: "^S:save", action: "save"},
			{label: zoomStr},
			{label: "Q:quit", action: "quit"},
		}
	}

	tb.shortcutRects = tb.shortcutRects[:0]
	x := tb.width + 4
	y := st.height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range hints {
		h := &hints[i]
		wpx := meas.MeasureString(h.label).Ceil()
		h.rect = image.Rect(x-2, y-14, x+wpx+2, y+4)
		if h.action != "" {
			act := h.action
			h.onClick = func() { st.handleShortcut(act) }
		}
		bg := th.ButtonBackground
		if i == tb.hoverShortcut {
			bg = th.ButtonBackgroundHover
		}
		draw.Draw(dst, h.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		outlineLoop(dst, h.rect, th.ButtonBorder)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(h.rect.Min.X+2, h.rect.Min.Y+14)}
		d.DrawString(h.label)
		tb.shortcutRects = append(tb.shortcutRects, *h)
		x = h.rect.Max.X + 8
	}
}

// outlineLoop draws a one-pixel border just inside rect.
func outlineLoop(dst *image.RGBA, rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		dst.Set(x, rect.Min.Y, col)
		dst.Set(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		dst.Set(rect.Min.X, y, col)
		dst.Set(rect.Max.X-1, y, col)
	}
}
