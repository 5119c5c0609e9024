// Package display provides the surfaces a measuring session is shown on.
//
// A Surface presents the working image, forwards pointer clicks to the
// session and blocks until the user dismisses it. Clicks are delivered on
// the goroutine that called Show, between the surface's own waits, so the
// session needs no locking.
//
// Three surfaces exist:
//   - Window: an OpenCV window (only in binaries built with -tags gocv)
//   - Stream: newline-delimited JSON events read from a reader, usually stdin
//   - Replay: a fixed list of clicks, for scripted and headless runs
package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-measure/internal/logging"
)

// ErrNoWindow is returned when a window is requested from a binary built
// without OpenCV support.
var ErrNoWindow = errors.New("display: window support not compiled in (build with -tags gocv)")

// ClickFunc receives a pointer click in canvas coordinates.
type ClickFunc func(p image.Point)

// Surface shows the working image and delivers clicks until dismissed.
type Surface interface {
	// Show blocks until the surface is dismissed or ctx is cancelled. It
	// repaints canvas after every delivered click.
	Show(ctx context.Context, canvas *image.NRGBA, onClick ClickFunc) error

	// Close releases any resources held by the surface.
	Close() error
}

// Kind names a surface implementation.
type Kind string

const (
	KindWindow Kind = "window"
	KindStream Kind = "stream"
	KindReplay Kind = "replay"
)

// DefaultKind is the window when OpenCV support is compiled in, otherwise
// the replay surface.
func DefaultKind() Kind {
	if WindowSupported {
		return KindWindow
	}
	return KindReplay
}

// ParseKind validates a surface name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindWindow, KindStream, KindReplay:
		return k, nil
	default:
		return "", fmt.Errorf("unknown display %q (want window, stream or replay)", s)
	}
}

// Options configures New.
type Options struct {
	Kind Kind

	// Title names the window.
	Title string

	// Clicks are replayed in order by the replay surface.
	Clicks []image.Point

	// Input is read by the stream surface.
	Input io.Reader

	Log logrus.FieldLogger
}

// New builds the surface selected by opts.Kind.
func New(opts Options) (Surface, error) {
	log := orDiscard(opts.Log)

	switch opts.Kind {
	case KindWindow:
		w, err := NewWindow(opts.Title, log)
		if err != nil {
			return nil, err
		}
		return w, nil
	case KindStream:
		if opts.Input == nil {
			return nil, fmt.Errorf("display: stream surface needs an input reader")
		}
		return NewStream(opts.Input, log), nil
	case KindReplay:
		return NewReplay(opts.Clicks, log), nil
	default:
		return nil, fmt.Errorf("display: unknown kind %q", opts.Kind)
	}
}

// deliver forwards p to onClick when it lies on the canvas. Clicks outside
// the image are logged and dropped.
func deliver(canvas *image.NRGBA, p image.Point, onClick ClickFunc, log logrus.FieldLogger) bool {
	if !p.In(canvas.Bounds()) {
		log.WithFields(logrus.Fields{"x": p.X, "y": p.Y}).Warn("click outside image ignored")
		return false
	}
	onClick(p)
	return true
}

// orDiscard returns log, or a logger that drops everything when log is nil.
func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	return logging.Discard()
}
