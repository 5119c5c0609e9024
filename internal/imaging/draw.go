package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawHLine paints the horizontal run [x0, x1] on row y. Pixels outside the
// canvas are skipped.
func DrawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 < b.Min.X || x0 >= b.Max.X {
		return
	}
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	i := img.PixOffset(x0, y)
	for x := x0; x <= x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

// DrawVLine paints the vertical run [y0, y1] on column x. Pixels outside the
// canvas are skipped.
func DrawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 < b.Min.Y || y0 >= b.Max.Y {
		return
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	i := img.PixOffset(x, y0)
	for y := y0; y <= y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

// DrawRect outlines the rectangle with corners (x0,y0) and (x1,y1), both
// inclusive. Strokes thicker than one pixel grow outward first, then inward.
func DrawRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	for s := 0; s < thickness; s++ {
		off := s - thickness/2
		l, t, r, b := x0+off, y0+off, x1-off, y1-off
		DrawHLine(img, t, l, r, c)
		DrawHLine(img, b, l, r, c)
		DrawVLine(img, l, t, b, c)
		DrawVLine(img, r, t, b, c)
	}
}

// DrawLine draws a straight segment from p0 to p1 using Bresenham's
// algorithm, stamping a thickness×thickness square at every step.
func DrawLine(img *image.NRGBA, p0, p1 image.Point, c color.NRGBA, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx + dy
	x, y := p0.X, p0.Y
	for {
		stamp(img, x, y, c, thickness)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// FillCircle paints a solid disc of the given radius centred on center.
func FillCircle(img *image.NRGBA, center image.Point, radius int, c color.NRGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(center.X+dx, center.Y+dy, c)
			}
		}
	}
}

// DrawText renders s with its baseline starting at origin, matching the
// bottom-left text anchor used by OpenCV's putText. Glyphs falling outside
// the canvas are clipped.
func DrawText(img *image.NRGBA, origin image.Point, s string, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(s)
}

// TextWidth reports the advance in pixels of s in the annotation font.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// stamp paints a size×size square whose top-left sits size/2 pixels up and
// left of (x,y).
func stamp(img *image.NRGBA, x, y int, c color.NRGBA, size int) {
	if size == 1 {
		img.SetNRGBA(x, y, c)
		return
	}
	off := size / 2
	for dy := 0; dy < size; dy++ {
		DrawHLine(img, y-off+dy, x-off, x-off+size-1, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
