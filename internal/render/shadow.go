package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow decoration applied to a flattened
// image before export.
type ShadowOptions struct {
	Blur    int
	OffsetX int
	OffsetY int
	Opacity float64
}

// DefaultShadowOptions returns the shadow used when exporting with
// decoration enabled.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Blur: 24, OffsetX: 16, OffsetY: 16, Opacity: 0.55}
}

// AddShadow returns a new zero-based image containing img composited over a
// blurred drop shadow, expanded just enough to hold both. A nil image, an
// empty image, or a non-positive opacity returns img unchanged.
func AddShadow(img *image.RGBA, opts ShadowOptions) *image.RGBA {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	blur := opts.Blur
	if blur < 0 {
		blur = 0
	}

	src := img.Bounds()
	pad := src
	if blur > 0 {
		pad = pad.Inset(-blur)
	}
	shadow := pad.Add(image.Pt(opts.OffsetX, opts.OffsetY))
	canvas := src.Union(shadow)
	if canvas.Empty() {
		return img
	}

	// The shadow mask carries the source alpha so transparent regions of the
	// input cast no shadow.
	mask := image.NewGray(pad.Sub(pad.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-pad.Min.X, y-pad.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlurGray(mask, blur)

	out := image.NewRGBA(canvas.Sub(canvas.Min))
	draw.Draw(out, out.Bounds(), image.Transparent, image.Point{}, draw.Src)
	alpha := uint8(opacity*255 + 0.5)
	if alpha > 0 {
		at := blurred.Bounds().Add(shadow.Min.Sub(canvas.Min))
		draw.DrawMask(out, at, image.NewUniform(color.RGBA{A: alpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(out, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return out
}

// boxBlurGray applies a two-pass box blur of the given radius, an adequate
// gaussian stand-in for soft shadow edges.
func boxBlurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	dst := image.NewGray(src.Bounds())

	for y := 0; y < h; y++ {
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[y*src.Stride+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
