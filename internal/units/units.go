// Package units converts pixel lengths into physical lengths and formats
// them for reports.
package units

import (
	"math"
	"strconv"
	"strings"
)

// DefaultScale is the stock calibration: one pixel is 0.026 cm.
const DefaultScale Scale = 0.026

// Scale is a fixed physical length per pixel, in centimetres. It is set once
// at startup and never changes during a run.
type Scale float64

// Convert returns px in centimetres, rounded to two decimal places.
func (s Scale) Convert(px float64) float64 {
	return Round2(px * float64(s))
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format renders v with the fewest digits that round-trip, always keeping
// at least one fractional digit: 0.52 -> "0.52", 0.5 -> "0.5", 1 -> "1.0".
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
