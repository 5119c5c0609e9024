package imaging

import (
	"image"
	"image/color"
)

// DefaultGridSpacing is the distance in pixels between reference grid lines.
const DefaultGridSpacing = 50

// DrawGrid overlays a 1px reference grid on img in place.
//
// Vertical lines are drawn at every x that is a multiple of spacing,
// starting at x=0, across the full height; horizontal lines likewise at
// every multiple of spacing across the full width. A spacing of zero or
// less leaves the image untouched.
func DrawGrid(img *image.NRGBA, spacing int, c color.NRGBA) {
	if spacing <= 0 {
		return
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Draw vertical lines
	for x := 0; x < width; x += spacing {
		DrawVLine(img, bounds.Min.X+x, bounds.Min.Y, bounds.Max.Y-1, c)
	}

	// Draw horizontal lines
	for y := 0; y < height; y += spacing {
		DrawHLine(img, bounds.Min.Y+y, bounds.Min.X, bounds.Max.X-1, c)
	}
}
