// Package report persists the results of a measuring run: the annotated
// image and the plain-text list of detected objects.
package report

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the OpenCV default for imwrite.
const DefaultJPEGQuality = 95

// ErrUnsupportedFormat is returned when the output path has an extension
// no encoder is registered for.
var ErrUnsupportedFormat = errors.New("unsupported output image format")

// WriteImage encodes img to path, choosing the encoder from the extension:
// .jpg/.jpeg, .png, .gif, .bmp, .tif/.tiff or .webp. Existing files are
// overwritten. quality applies to JPEG and lossy WebP.
func WriteImage(path string, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return writeWebP(path, img, quality)
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to write image %s: %w", path, err)
	}
	return nil
}

func writeWebP(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image %s: %w", path, err)
	}

	opts := &webp.Options{Lossless: false, Quality: float32(quality)}
	if err := webp.Encode(f, img, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode webp %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write image %s: %w", path, err)
	}
	return nil
}

// WriteMeasurements writes records to path, one per line, with no trailing
// newline. An empty list produces an empty file. Existing files are
// overwritten.
func WriteMeasurements(path string, records []string) error {
	data := strings.Join(records, "\n")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write measurements %s: %w", path, err)
	}
	return nil
}
