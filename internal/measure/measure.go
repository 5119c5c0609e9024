package measure

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-measure/internal/units"
)

// Measurement is the result of one two-click cycle.
type Measurement struct {
	From image.Point `json:"from"`
	To   image.Point `json:"to"`

	// Pixels is the exact Euclidean distance between From and To.
	Pixels float64 `json:"distance_pixels"`

	// CM is Pixels converted with the session scale, rounded to 2 decimals.
	CM float64 `json:"distance_cm"`
}

// Distance returns the Euclidean distance in pixels between two points.
func Distance(a, b image.Point) float64 {
	deltaX := float64(b.X - a.X)
	deltaY := float64(b.Y - a.Y)
	return math.Sqrt(deltaX*deltaX + deltaY*deltaY)
}

// Measure builds the measurement between two points at the given scale.
func Measure(from, to image.Point, scale units.Scale) Measurement {
	px := Distance(from, to)
	return Measurement{
		From:   from,
		To:     to,
		Pixels: px,
		CM:     scale.Convert(px),
	}
}

// Overlay is the text drawn on the image: whole pixels, then centimetres.
func (m Measurement) Overlay() string {
	return fmt.Sprintf("%d px / %s cm", int(m.Pixels), units.Format(m.CM))
}

// String is the console line printed for the measurement.
func (m Measurement) String() string {
	return fmt.Sprintf("Measured Distance: %spx / %scm",
		units.Format(m.Pixels), units.Format(m.CM))
}
