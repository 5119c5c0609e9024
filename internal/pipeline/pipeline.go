// Package pipeline runs one measuring session from input image to saved
// results.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-measure/internal/config"
	"github.com/ironsheep/image-measure/internal/detection"
	"github.com/ironsheep/image-measure/internal/display"
	"github.com/ironsheep/image-measure/internal/imaging"
	"github.com/ironsheep/image-measure/internal/logging"
	"github.com/ironsheep/image-measure/internal/measure"
	"github.com/ironsheep/image-measure/internal/report"
)

// ClickPrompt is printed once the annotated image is ready for clicks.
const ClickPrompt = "Click two points to measure distance. Press any key to exit."

// Result summarizes a completed run.
type Result struct {
	// Size of the working image after resizing.
	Size image.Point

	Objects      []detection.Object
	Measurements []measure.Measurement

	ImagePath string
	TextPath  string
}

// Run executes the full sequence:
//
//  1. load the input (failure wraps imaging.ErrDecode and writes nothing)
//  2. resize to cfg.MaxWidth
//  3. detect and annotate objects
//  4. draw the reference grid
//  5. show the canvas on surface, measuring click pairs until dismissed
//  6. save the annotated image, then the measurements file
//
// User-facing lines go to stdout; diagnostics go to log.
func Run(ctx context.Context, cfg *config.Config, surface display.Surface, stdout io.Writer, log logrus.FieldLogger) (*Result, error) {
	if stdout == nil {
		stdout = io.Discard
	}
	if log == nil {
		log = logging.Discard()
	}

	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	src, err := imaging.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"path":   cfg.Input,
		"width":  src.Bounds().Dx(),
		"height": src.Bounds().Dy(),
	}).Debug("image loaded")

	canvas := imaging.Resize(src, cfg.MaxWidth)
	size := canvas.Bounds().Size()
	if size != src.Bounds().Size() {
		log.WithFields(logrus.Fields{"width": size.X, "height": size.Y}).Info("image resized")
	}

	session := measure.NewSession(canvas, cfg.Scale(), palette, stdout, log)

	detector := &detection.Detector{
		Low:     cfg.CannyLow,
		High:    cfg.CannyHigh,
		MinSize: cfg.MinBoxSize,
		Scale:   session.Scale(),
	}
	objects := detector.Detect(canvas)
	session.AddObjects(objects...)
	detection.Annotate(canvas, objects, palette)
	log.WithField("objects", len(objects)).Info("objects detected")

	imaging.DrawGrid(canvas, cfg.GridSpacing, palette.Grid)

	fmt.Fprintln(stdout, ClickPrompt)
	if err := surface.Show(ctx, canvas, func(p image.Point) {
		session.HandleClick(p)
	}); err != nil {
		return nil, fmt.Errorf("display failed: %w", err)
	}
	if n := len(session.Pending()); n > 0 {
		log.WithField("pending", n).Debug("unpaired click discarded")
	}

	if err := report.WriteImage(cfg.OutputImage, canvas, cfg.JPEGQuality); err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "Annotated image saved to %s\n", cfg.OutputImage)

	if err := report.WriteMeasurements(cfg.OutputText, session.Records()); err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "Measurements saved to %s\n", cfg.OutputText)

	return &Result{
		Size:         size,
		Objects:      session.Objects(),
		Measurements: session.Measurements(),
		ImagePath:    cfg.OutputImage,
		TextPath:     cfg.OutputText,
	}, nil
}
