// Package export turns a scene into its deliverable forms: PNG and PDF
// files, or an image on the system clipboard. Exporting always goes through
// a flattened copy; the live scene and surface are never touched.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
)

// Options controls export decoration.
type Options struct {
	// Shadow composites the flattened image over a drop shadow.
	Shadow bool
}

// Image flattens base and sc into the raster that gets exported.
func Image(base image.Image, sc *scene.Scene, opts Options) *image.RGBA {
	img := render.Flatten(base, sc)
	if opts.Shadow {
		img = render.AddShadow(img, render.DefaultShadowOptions())
	}
	return img
}

// Save writes img to path, choosing the encoder from the extension: .pdf
// produces a single-page PDF sized to the image, anything else PNG.
func Save(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		if err := WritePDF(f, img); err != nil {
			return err
		}
	} else if err := WritePNG(f, img); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePDF writes a one-page PDF whose page is sized in points to match the
// image, so the raster embeds at native resolution with no margins.
func WritePDF(w io.Writer, img *image.RGBA) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("encode pdf: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode pdf raster: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(b.Dx()), Ht: float64(b.Dy())},
	})
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scene", opts, &buf)
	pdf.ImageOptions("scene", 0, 0, float64(b.Dx()), float64(b.Dy()), false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ToClipboard places img on the system clipboard.
func ToClipboard(img image.Image) error {
	if err := clipboard.WriteImage(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
