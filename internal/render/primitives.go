package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// stampDot paints a filled circle of the given radius, the brush shape used
// for thick lines so joints and caps come out round.
func stampDot(img *image.RGBA, cx, cy int, radius float64, col color.Color) {
	r := int(math.Ceil(radius))
	if r < 0 {
		return
	}
	rsq := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) > rsq {
				continue
			}
			px, py := cx+dx, cy+dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// drawThickLine walks the segment with Bresenham steps, stamping a round
// brush at each step.
func drawThickLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, width float64) {
	radius := width / 2
	if radius < 0.5 {
		radius = 0.5
	}
	dx := int(math.Abs(float64(x1 - x0)))
	dy := int(math.Abs(float64(y1 - y0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stampDot(img, x0, y0, radius, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

func strokeRect(img *image.RGBA, rect image.Rectangle, col color.Color, width float64) {
	drawThickLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, col, width)
	drawThickLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, col, width)
	drawThickLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, col, width)
	drawThickLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, col, width)
}

// strokeEllipse approximates the outline with short segments; the step count
// scales with the circumference so large ellipses stay smooth.
func strokeEllipse(img *image.RGBA, cx, cy, rx, ry float64, col color.Color, width float64) {
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(rx*rx+ry*ry)))
	if steps < 8 {
		steps = 8
	}
	prevX := cx + rx
	prevY := cy
	for i := 1; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + math.Cos(angle)*rx
		y := cy + math.Sin(angle)*ry
		drawThickLine(img, int(prevX), int(prevY), int(x), int(y), col, width)
		prevX, prevY = x, y
	}
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, col color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	top := int(math.Floor(cy - ry))
	bottom := int(math.Ceil(cy + ry))
	for py := top; py <= bottom; py++ {
		fy := (float64(py) - cy) / ry
		if fy*fy > 1 {
			continue
		}
		span := rx * math.Sqrt(1-fy*fy)
		x0 := int(math.Ceil(cx - span))
		x1 := int(math.Floor(cx + span))
		for px := x0; px <= x1; px++ {
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// fillTriangle rasterizes the triangle (ax,ay)-(bx,by)-(cx,cy) by scanline.
func fillTriangle(img *image.RGBA, ax, ay, bx, by, cx, cy float64, col color.Color) {
	minX := int(math.Floor(math.Min(ax, math.Min(bx, cx))))
	maxX := int(math.Ceil(math.Max(ax, math.Max(bx, cx))))
	minY := int(math.Floor(math.Min(ay, math.Min(by, cy))))
	maxY := int(math.Ceil(math.Max(ay, math.Max(by, cy))))

	area := (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
	if area == 0 {
		return
	}
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			fx := float64(px) + 0.5
			fy := float64(py) + 0.5
			w0 := (bx-fx)*(cy-fy) - (cx-fx)*(by-fy)
			w1 := (cx-fx)*(ay-fy) - (ax-fx)*(cy-fy)
			w2 := (ax-fx)*(by-fy) - (bx-fx)*(ay-fy)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				if image.Pt(px, py).In(img.Bounds()) {
					img.Set(px, py, col)
				}
			}
		}
	}
}

// drawDashedLine alternates dash-length runs of two colors along a
// horizontal or vertical line. Selection chrome is axis-aligned, so the
// general case never comes up.
func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length = -length
	}
	for i := 0; i <= length; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		var px, py int
		if horiz {
			px = x0 + i
			if x0 > x1 {
				px = x0 - i
			}
			py = y0
		} else {
			px = x0
			py = y0 + i
			if y0 > y1 {
				py = y0 - i
			}
		}
		if image.Pt(px, py).In(img.Bounds()) {
			img.Set(px, py, col)
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, c1, c2)
}
