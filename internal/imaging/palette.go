package imaging

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colours used for every annotation drawn on the working
// image.
type Palette struct {
	Grid   color.NRGBA // reference grid lines
	Box    color.NRGBA // detected object outlines
	Label  color.NRGBA // W:/H: labels above detected objects
	Marker color.NRGBA // click markers
	Line   color.NRGBA // line joining two clicks
	Text   color.NRGBA // distance overlay
}

// DefaultPalette returns the stock annotation colours: light gray grid,
// green boxes and measurement lines, blue labels, red markers and cyan
// distance text.
func DefaultPalette() Palette {
	return Palette{
		Grid:   color.NRGBA{200, 200, 200, 255},
		Box:    color.NRGBA{0, 255, 0, 255},
		Label:  color.NRGBA{0, 0, 255, 255},
		Marker: color.NRGBA{255, 0, 0, 255},
		Line:   color.NRGBA{0, 255, 0, 255},
		Text:   color.NRGBA{0, 255, 255, 255},
	}
}

// ParseColor parses a hex colour such as "#C8C8C8", "c8c8c8" or "#ccc" into
// an opaque NRGBA value.
func ParseColor(hex string) (color.NRGBA, error) {
	s := strings.TrimSpace(hex)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// HexColor formats c as "#RRGGBB", ignoring alpha.
func HexColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}
