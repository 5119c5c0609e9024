//go:build gocv

package display

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// WindowSupported reports whether this binary can open OpenCV windows.
const WindowSupported = true

const (
	// eventLButtonDown is OpenCV's EVENT_LBUTTONDOWN.
	eventLButtonDown = 1

	// refreshMillis is how long each WaitKey blocks before the canvas is
	// checked for repaint.
	refreshMillis = 30
)

// Window is a named OpenCV window. Left-button clicks are forwarded; any key
// or closing the window dismisses it.
type Window struct {
	title string
	win   *gocv.Window
	log   logrus.FieldLogger
}

// NewWindow prepares a window titled title. The OpenCV window itself is
// created on the first Show.
func NewWindow(title string, log logrus.FieldLogger) (*Window, error) {
	return &Window{title: title, log: orDiscard(log)}, nil
}

// Show displays canvas and pumps window events until dismissed. Mouse
// callbacks run inside WaitKey on this goroutine.
func (w *Window) Show(ctx context.Context, canvas *image.NRGBA, onClick ClickFunc) error {
	if w.win == nil {
		w.win = gocv.NewWindow(w.title)
	}

	dirty := true
	w.win.SetMouseHandler(func(event, x, y, flags int, _ interface{}) {
		if event != eventLButtonDown {
			return
		}
		if deliver(canvas, image.Pt(x, y), onClick, w.log) {
			dirty = true
		}
	}, nil)

	var frame gocv.Mat
	shown := false
	defer func() {
		if shown {
			frame.Close()
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if dirty {
			next, err := gocv.ImageToMatRGB(canvas)
			if err != nil {
				return fmt.Errorf("failed to convert canvas: %w", err)
			}
			if shown {
				frame.Close()
			}
			frame, shown = next, true
			if err := w.win.IMShow(frame); err != nil {
				return fmt.Errorf("failed to show canvas: %w", err)
			}
			dirty = false
		}

		if key := w.win.WaitKey(refreshMillis); key >= 0 {
			w.log.WithField("key", key).Debug("key pressed, closing window")
			return nil
		}
		if !w.win.IsOpen() {
			return nil
		}
	}
}

// Close destroys the window if it was opened.
func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	err := w.win.Close()
	w.win = nil
	return err
}
