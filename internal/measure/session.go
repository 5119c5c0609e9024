package measure

import (
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-measure/internal/detection"
	"github.com/ironsheep/image-measure/internal/imaging"
	"github.com/ironsheep/image-measure/internal/logging"
	"github.com/ironsheep/image-measure/internal/units"
)

// State is the click state of a Session.
type State int

const (
	// StateEmpty means no point is buffered; the next click starts a pair.
	StateEmpty State = iota
	// StateWaiting means one point is buffered; the next click completes it.
	StateWaiting
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateWaiting:
		return "waiting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// transition returns the state that follows a click in state s.
func transition(s State) State {
	if s == StateEmpty {
		return StateWaiting
	}
	return StateEmpty
}

const (
	markerRadius  = 5
	lineThickness = 2
)

// OverlayOrigin is where the latest distance is written on the image. Every
// measurement lands on the same spot, so only the newest stays readable.
var OverlayOrigin = image.Pt(50, 50)

// Session owns all mutable state of one measuring run: the working image,
// the click buffer, the detected objects and every completed measurement.
//
// A Session is driven from a single goroutine. Click callbacks and the main
// sequence share the canvas without locking.
type Session struct {
	canvas  *image.NRGBA
	scale   units.Scale
	palette imaging.Palette
	out     io.Writer
	log     logrus.FieldLogger

	state  State
	points []image.Point

	objects      []detection.Object
	measurements []Measurement
}

// NewSession creates a session drawing on canvas. Console lines go to out;
// a nil out discards them.
func NewSession(canvas *image.NRGBA, scale units.Scale, palette imaging.Palette, out io.Writer, log logrus.FieldLogger) *Session {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		canvas:  canvas,
		scale:   scale,
		palette: palette,
		out:     out,
		log:     log,
		state:   StateEmpty,
		points:  make([]image.Point, 0, 2),
	}
}

// Canvas returns the working image.
func (s *Session) Canvas() *image.NRGBA {
	return s.canvas
}

// Scale returns the session's pixel-to-centimetre scale.
func (s *Session) Scale() units.Scale {
	return s.scale
}

// State returns the current click state.
func (s *Session) State() State {
	return s.state
}

// Pending returns a copy of the buffered click points (zero or one).
func (s *Session) Pending() []image.Point {
	return append([]image.Point(nil), s.points...)
}

// HandleClick processes one pointer click at p.
//
// In StateEmpty the point is buffered and marked. In StateWaiting the second
// point is marked, the pair is measured, joined by a line, the result is
// written at OverlayOrigin and printed, and the buffer is cleared. The
// completed measurement is returned with ok set.
func (s *Session) HandleClick(p image.Point) (m Measurement, ok bool) {
	s.points = append(s.points, p)
	imaging.FillCircle(s.canvas, p, markerRadius, s.palette.Marker)

	prev := s.state
	s.state = transition(prev)
	s.log.WithFields(logrus.Fields{"x": p.X, "y": p.Y, "state": s.state}).Debug("click")

	if prev == StateEmpty {
		return Measurement{}, false
	}

	m = Measure(s.points[0], s.points[1], s.scale)
	s.points = s.points[:0]

	imaging.DrawLine(s.canvas, m.From, m.To, s.palette.Line, lineThickness)
	imaging.DrawText(s.canvas, OverlayOrigin, m.Overlay(), s.palette.Text)
	fmt.Fprintln(s.out, m.String())

	s.measurements = append(s.measurements, m)
	s.log.WithFields(logrus.Fields{"px": m.Pixels, "cm": m.CM}).Info("distance measured")

	return m, true
}

// Measurements returns every completed measurement, oldest first.
func (s *Session) Measurements() []Measurement {
	return append([]Measurement(nil), s.measurements...)
}

// LastMeasurement returns the most recent measurement, if any.
func (s *Session) LastMeasurement() (Measurement, bool) {
	if len(s.measurements) == 0 {
		return Measurement{}, false
	}
	return s.measurements[len(s.measurements)-1], true
}

// AddObjects appends detected objects to the session's result list.
func (s *Session) AddObjects(objects ...detection.Object) {
	s.objects = append(s.objects, objects...)
}

// Objects returns the detected objects in result order.
func (s *Session) Objects() []detection.Object {
	return append([]detection.Object(nil), s.objects...)
}

// Records returns one measurements-file line per detected object.
func (s *Session) Records() []string {
	records := make([]string, len(s.objects))
	for i, o := range s.objects {
		records[i] = o.Record()
	}
	return records
}
