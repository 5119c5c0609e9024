package display

import (
	"context"
	"image"

	"github.com/sirupsen/logrus"
)

// Replay delivers a fixed sequence of clicks and then dismisses itself.
type Replay struct {
	clicks []image.Point
	log    logrus.FieldLogger
}

// NewReplay creates a replay surface for clicks.
func NewReplay(clicks []image.Point, log logrus.FieldLogger) *Replay {
	return &Replay{
		clicks: append([]image.Point(nil), clicks...),
		log:    orDiscard(log),
	}
}

// Show delivers every click in order. A cancelled context stops the replay
// early without error.
func (r *Replay) Show(ctx context.Context, canvas *image.NRGBA, onClick ClickFunc) error {
	r.log.WithField("clicks", len(r.clicks)).Debug("replaying clicks")
	for _, p := range r.clicks {
		if ctx.Err() != nil {
			return nil
		}
		deliver(canvas, p, onClick, r.log)
	}
	return nil
}

// Close is a no-op.
func (r *Replay) Close() error {
	return nil
}
