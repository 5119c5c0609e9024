//go:build !gocv

package display

import (
	"context"
	"image"

	"github.com/sirupsen/logrus"
)

// WindowSupported reports whether this binary can open OpenCV windows.
const WindowSupported = false

// Window is unavailable without the gocv build tag.
type Window struct{}

// NewWindow always fails with ErrNoWindow in this build.
func NewWindow(title string, log logrus.FieldLogger) (*Window, error) {
	return nil, ErrNoWindow
}

// Show always fails with ErrNoWindow in this build.
func (w *Window) Show(ctx context.Context, canvas *image.NRGBA, onClick ClickFunc) error {
	return ErrNoWindow
}

// Close is a no-op.
func (w *Window) Close() error {
	return nil
}
