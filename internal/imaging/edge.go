package imaging

import (
	"image"
	"image/color"
	"math"
)

// Default hysteresis thresholds for Canny, on the 0-255 intensity scale.
const (
	DefaultCannyLow  = 50
	DefaultCannyHigh = 150
)

// Canny runs Canny edge detection over a single-channel intensity image.
//
// The returned edge map has the same bounds as gray; edge pixels are 255 and
// everything else is 0.
//
// Parameters:
//   - gray: Source intensity image.
//   - thresholdLow: Gradient magnitude (0-255 scale) below which a pixel is
//     never an edge.
//   - thresholdHigh: Gradient magnitude at or above which a pixel is always an
//     edge. Pixels between the two thresholds are kept only when they connect
//     to a strong pixel through other kept pixels.
//
// # Algorithm
//
//  1. Gaussian blur: 5x5 kernel to reduce noise
//
//  2. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  3. Non-maximum suppression: keep a pixel only if its magnitude beats the
//     neighbour behind it along the gradient and is at least the neighbour
//     ahead of it. The asymmetric comparison leaves a plateau one pixel wide
//     instead of two.
//
//  4. Hysteresis: flood from strong pixels through 8-connected weak pixels.
//
// Image borders are replicated for the blur and Sobel passes, and border
// pixels take part in suppression, so an object touching the frame still
// gets an edge along its inner sides.
func Canny(gray *image.Gray, thresholdLow, thresholdHigh int) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	lum := make([][]float64, height)
	for y := 0; y < height; y++ {
		lum[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			lum[y][x] = float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y) / 255.0
		}
	}

	blurred := gaussianBlur(lum, width, height)
	magnitude, direction := sobel(blurred, width, height)
	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	low := float64(thresholdLow) / 255.0
	high := float64(thresholdHigh) / 255.0
	if low > high {
		low, high = high, low
	}

	result := image.NewGray(bounds)
	stack := make([]image.Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] > 0 && suppressed[y][x] >= high {
				result.SetGray(x+bounds.Min.X, y+bounds.Min.Y, color.Gray{255})
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}

	// Edge tracking by hysteresis
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				val := suppressed[ny][nx]
				if val <= 0 || val < low {
					continue
				}
				if result.GrayAt(nx+bounds.Min.X, ny+bounds.Min.Y).Y != 0 {
					continue
				}
				result.SetGray(nx+bounds.Min.X, ny+bounds.Min.Y, color.Gray{255})
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return result
}

// sobel computes gradient magnitude and direction (radians) for every pixel.
// Border pixels use clamped (replicated) neighbours.
func sobel(img [][]float64, width, height int) (magnitude, direction [][]float64) {
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += img[py][px] * sobelX[ky+1][kx+1]
					gy += img[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// plateauEpsilon absorbs floating point noise between magnitudes that are
// equal in exact arithmetic, so ties along a straight edge break the same way
// on every row.
const plateauEpsilon = 1e-9

// suppressNonMaxima thins gradient ridges to one pixel.
//
// The gradient direction is folded into [0°, 180°) and quantised to one of
// four axes in image coordinates (Y grows downward). Neighbours outside the
// image count as zero.
func suppressNonMaxima(magnitude, direction [][]float64, width, height int) [][]float64 {
	at := func(x, y int) float64 {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return magnitude[y][x]
	}

	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			angle := direction[y][x] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var dx, dy int
			switch {
			case angle < 22.5 || angle >= 157.5:
				dx, dy = 1, 0
			case angle < 67.5:
				dx, dy = 1, 1
			case angle < 112.5:
				dx, dy = 0, 1
			default:
				dx, dy = -1, 1
			}

			behind := at(x-dx, y-dy)
			ahead := at(x+dx, y+dy)
			if mag > behind+plateauEpsilon && mag >= ahead-plateauEpsilon {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

// gaussianBlur applies a 5x5 Gaussian blur to reduce noise before edge detection.
//
// Uses a standard 5x5 Gaussian kernel with sigma ≈ 1.4:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
//
// Total kernel sum = 273, used for normalization.
// Border pixels use clamped (replicated) edge values.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	kernelSum := 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
