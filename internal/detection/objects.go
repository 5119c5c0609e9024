package detection

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/image-measure/internal/imaging"
	"github.com/ironsheep/image-measure/internal/units"
)

// DefaultMinSize is the noise floor: rectangles this many pixels wide or
// high, or smaller, are never reported.
const DefaultMinSize = 10

// Object is a detected object: the bounding rectangle of one external
// contour plus its physical size. Objects are values and never change after
// detection.
type Object struct {
	Rect

	// WidthCM is Width converted with the detector's scale, rounded to 2 decimals.
	WidthCM float64 `json:"width_cm"`

	// HeightCM is Height converted with the detector's scale, rounded to 2 decimals.
	HeightCM float64 `json:"height_cm"`
}

// Record formats the object as one line of the measurements file.
func (o Object) Record() string {
	return fmt.Sprintf("Object at (%d, %d): Width=%scm, Height=%scm",
		o.X, o.Y, units.Format(o.WidthCM), units.Format(o.HeightCM))
}

// Label is the short caption drawn above the object's box.
func (o Object) Label() string {
	return fmt.Sprintf("W:%scm H:%scm", units.Format(o.WidthCM), units.Format(o.HeightCM))
}

// Detector finds rectangular objects through edge detection.
type Detector struct {
	// Low and High are the Canny hysteresis thresholds (0-255).
	Low  int
	High int

	// MinSize discards rectangles whose width or height is <= MinSize.
	MinSize int

	// Scale converts pixel sizes to centimetres.
	Scale units.Scale
}

// NewDetector returns a detector with the stock thresholds (50/150), the
// 10 pixel noise floor and the given scale.
func NewDetector(scale units.Scale) *Detector {
	return &Detector{
		Low:     imaging.DefaultCannyLow,
		High:    imaging.DefaultCannyHigh,
		MinSize: DefaultMinSize,
		Scale:   scale,
	}
}

// Detect finds objects in img.
//
// # Algorithm
//
//  1. Grayscale conversion
//  2. Canny edge detection with the detector's thresholds
//  3. External contour extraction (nested outlines are dropped)
//  4. Bounding rectangle per contour
//  5. Noise filter: width <= MinSize or height <= MinSize is discarded
//  6. Sort by top-left corner, row first, for a stable order
//
// Overlapping rectangles from separate contours are all reported.
func (d *Detector) Detect(img image.Image) []Object {
	edges := imaging.Canny(grayscale(img), d.Low, d.High)

	objects := make([]Object, 0)
	for _, contour := range FindExternalContours(edges) {
		r := contour.BoundingRect()
		if r.Width <= d.MinSize || r.Height <= d.MinSize {
			continue
		}
		objects = append(objects, Object{
			Rect:     r,
			WidthCM:  d.Scale.Convert(float64(r.Width)),
			HeightCM: d.Scale.Convert(float64(r.Height)),
		})
	}

	sort.SliceStable(objects, func(i, j int) bool {
		if objects[i].Y != objects[j].Y {
			return objects[i].Y < objects[j].Y
		}
		return objects[i].X < objects[j].X
	})

	return objects
}

// grayscale converts img to a single-channel intensity image. bild returns
// the luminance replicated across R, G and B; the R channel is kept.
func grayscale(img image.Image) *image.Gray {
	rgba := effect.Grayscale(img)
	gray := image.NewGray(rgba.Bounds())
	for i := range gray.Pix {
		gray.Pix[i] = rgba.Pix[i*4]
	}
	return gray
}

// labelOffset is how far above the box the label baseline sits.
const labelOffset = 10

// Annotate draws every object onto canvas: a 2px outline from (x,y) to
// (x+w, y+h) in the palette's box colour and the W:/H: label above it.
func Annotate(canvas *image.NRGBA, objects []Object, palette imaging.Palette) {
	for _, o := range objects {
		imaging.DrawRect(canvas, o.X, o.Y, o.X+o.Width, o.Y+o.Height, palette.Box, 2)
		imaging.DrawText(canvas, image.Pt(o.X, o.Y-labelOffset), o.Label(), palette.Label)
	}
}
