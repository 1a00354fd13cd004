package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
)

// paintState is the immutable-enough snapshot handed to the painter
// goroutine. The canvas pointer is shared; the event loop only mutates it
// between frames it has requested.
type paintState struct {
	width, height int
	theme         *theme.Theme
	canvas        *image.RGBA
	zoom          float64
	offset        image.Point
	bar           *toolbar

	tool  scene.Tool
	style annotation.Style

	selected  bool
	selBounds annotation.Rect

	textActive bool
	textInput  string
	textPos    annotation.Point

	message      string
	messageUntil time.Time

	handleShortcut func(string)
}

func fitZoom(img *image.RGBA, barWidth, winW, winH int) float64 {
	availW := winW - barWidth
	availH := winH - titleHeight - bottomHeight
	zx := float64(availW) / float64(img.Bounds().Dx())
	zy := float64(availH) / float64(img.Bounds().Dy())
	z := zx
	if zy < z {
		z = zy
	}
	if z > 1 {
		z = 1
	}
	if z < 0.1 {
		z = 0.1
	}
	return z
}

// imageRect returns the window-space rectangle the canvas is drawn into. The
// origin anchors just right of the toolbar so the canvas does not jump when
// the window is resized; offset pans in image coordinates.
func imageRect(img *image.RGBA, barWidth int, zoom float64, offset image.Point) image.Rectangle {
	w := int(float64(img.Bounds().Dx()) * zoom)
	h := int(float64(img.Bounds().Dy()) * zoom)
	x0 := barWidth + int(float64(offset.X)*zoom)
	y0 := titleHeight + int(float64(offset.Y)*zoom)
	return image.Rect(x0, y0, x0+w, y0+h)
}

// backdropCache holds the checkerboard rendered for the current window size.
var backdropCache *image.RGBA

func drawBackdrop(dst *image.RGBA, light, dark color.RGBA) {
	b := dst.Bounds()
	if backdropCache == nil || backdropCache.Bounds() != b {
		backdropCache = image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if ((x/8)+(y/8))%2 == 0 {
					backdropCache.SetRGBA(x, y, light)
				} else {
					backdropCache.SetRGBA(x, y, dark)
				}
			}
		}
	}
	draw.Draw(dst, b, backdropCache, image.Point{}, draw.Src)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	drawBackdrop(b.RGBA(), st.theme.CheckerLight, st.theme.CheckerDark)
	if ctx.Err() != nil {
		return
	}

	dst := imageRect(st.canvas, st.bar.width, st.zoom, st.offset)
	xdraw.NearestNeighbor.Scale(b.RGBA(), dst, st.canvas, st.canvas.Bounds(), draw.Over, nil)
	if ctx.Err() != nil {
		return
	}

	if st.selected {
		sel := st.selBounds.Norm()
		win := annotation.Rect{
			X:      float64(dst.Min.X) + sel.X*st.zoom,
			Y:      float64(dst.Min.Y) + sel.Y*st.zoom,
			Width:  sel.Width * st.zoom,
			Height: sel.Height * st.zoom,
		}
		render.SelectionChrome(b.RGBA(), win)
	}
	if ctx.Err() != nil {
		return
	}

	st.bar.draw(b.RGBA(), st)
	st.bar.drawShortcuts(b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}

	if st.textActive {
		px := dst.Min.X + int(st.textPos.X*st.zoom)
		py := dst.Min.Y + int(st.textPos.Y*st.zoom)
		render.DrawString(b.RGBA(), px, py, st.textInput+"|", st.style.Color, st.style.FontSize)
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(b.RGBA(), st.width, st.height, st.message, st.theme)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

const messageSize = 32

func drawMessage(dst *image.RGBA, width, height int, msg string, th *theme.Theme) {
	mw, mh := render.MeasureText(msg, messageSize)
	px := (width - int(mw)) / 2
	py := (height-int(mh))/2 + (messageSize * 8 / 10)
	rect := image.Rect(px-8, py-(messageSize*8/10)-8, px+int(mw)+8, py+int(mh)-(messageSize*8/10)+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	outlineLoop(dst, rect, th.ButtonBorder)
	render.DrawString(dst, px, py, msg, th.Foreground, messageSize)
}
