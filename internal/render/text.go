package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Text annotations render bold at their font size; one parsed font backs a
// cache of faces keyed by size.
var (
	boldFont  *opentype.Font
	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

func init() {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	boldFont = f
}

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = 16
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	for cached, face := range faceCache {
		if math.Abs(cached-size) < 0.01 {
			return face, nil
		}
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %vpt: %w", size, err)
	}
	faceCache[size] = face
	return face, nil
}

// MeasureText reports the rendered width and height of text at the given
// size. It satisfies annotation.Measurer.
func MeasureText(text string, size float64) (w, h float64) {
	face, err := faceForSize(size)
	if err != nil {
		log.Printf("measure text: %v", err)
		return float64(len(text)) * size * 0.6, size
	}
	drawer := &font.Drawer{Face: face}
	metrics := face.Metrics()
	return float64(drawer.MeasureString(text).Ceil()),
		float64(metrics.Ascent.Ceil() + metrics.Descent.Ceil())
}

// DrawString paints the glyph run with its baseline at (x, y). The UI uses
// it for the in-progress text entry overlay.
func DrawString(img *image.RGBA, x, y int, text string, col color.Color, size float64) {
	drawString(img, x, y, text, col, size)
}

// drawString paints the glyph run with its baseline at (x, y).
func drawString(img *image.RGBA, x, y int, text string, col color.Color, size float64) {
	face, err := faceForSize(size)
	if err != nil {
		log.Printf("draw text: %v", err)
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
