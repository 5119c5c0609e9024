package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultMaxWidth is the widest image the pipeline works on without resizing.
const DefaultMaxWidth = 800

// ErrDecode is returned by Load when the source cannot be read as an image.
// Missing files, corrupt data and unsupported formats all wrap it.
var ErrDecode = errors.New("unable to load image")

// Load reads and decodes the image at path.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The returned
// error wraps ErrDecode for every failure, so callers can tell a bad input
// apart from later pipeline errors with errors.Is.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %s: %v", ErrDecode, path, err)
	}

	return img, nil
}

// Resize returns a mutable working copy of img that is at most maxWidth
// pixels wide.
//
// When the source is wider than maxWidth both dimensions are multiplied by
// maxWidth/width and truncated, which preserves the aspect ratio within one
// pixel. Narrower images are copied unchanged. A maxWidth of zero or less
// disables resizing.
//
// The result is always a fresh *image.NRGBA with its origin at (0,0); every
// annotation step draws into it in place.
func Resize(img image.Image, maxWidth int) *image.NRGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxWidth <= 0 || width <= maxWidth {
		return imaging.Clone(img)
	}

	scale := float64(maxWidth) / float64(width)
	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newHeight < 1 {
		newHeight = 1
	}

	return imaging.Resize(img, newWidth, newHeight, imaging.Linear)
}
