package measure

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/ironsheep/image-measure/internal/detection"
	"github.com/ironsheep/image-measure/internal/imaging"
	"github.com/ironsheep/image-measure/internal/units"
)

// newTestSession returns a session on a white canvas and the buffer its
// console output goes to.
func newTestSession(t *testing.T, width, height int) (*Session, *bytes.Buffer) {
	t.Helper()
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range canvas.Pix {
		canvas.Pix[i] = 255
	}
	var out bytes.Buffer
	return NewSession(canvas, units.DefaultScale, imaging.DefaultPalette(), &out, nil), &out
}

func TestTransition(t *testing.T) {
	if got := transition(StateEmpty); got != StateWaiting {
		t.Errorf("transition(empty): got %v, want waiting", got)
	}
	if got := transition(StateWaiting); got != StateEmpty {
		t.Errorf("transition(waiting): got %v, want empty", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateEmpty, "empty"},
		{StateWaiting, "waiting"},
		{State(7), "State(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestSession_FirstClick(t *testing.T) {
	s, out := newTestSession(t, 200, 200)
	p := image.Pt(30, 40)

	if _, ok := s.HandleClick(p); ok {
		t.Fatal("first click should not complete a measurement")
	}
	if s.State() != StateWaiting {
		t.Errorf("state: got %v, want waiting", s.State())
	}
	if pending := s.Pending(); len(pending) != 1 || pending[0] != p {
		t.Errorf("pending: got %v, want [%v]", pending, p)
	}
	if got := s.Canvas().NRGBAAt(p.X, p.Y); got != imaging.DefaultPalette().Marker {
		t.Errorf("marker: got %v, want marker colour", got)
	}
	if got := s.Canvas().NRGBAAt(p.X+5, p.Y); got != imaging.DefaultPalette().Marker {
		t.Errorf("marker radius: pixel at r=5 got %v", got)
	}
	if got := s.Canvas().NRGBAAt(p.X+6, p.Y); got == imaging.DefaultPalette().Marker {
		t.Error("marker should not extend past r=5")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSession_CompletePair(t *testing.T) {
	s, out := newTestSession(t, 200, 200)
	palette := imaging.DefaultPalette()

	s.HandleClick(image.Pt(10, 100))
	m, ok := s.HandleClick(image.Pt(110, 100))
	if !ok {
		t.Fatal("second click should complete a measurement")
	}

	if m.Pixels != 100 || m.CM != 2.6 {
		t.Errorf("measurement: got %vpx / %vcm, want 100px / 2.6cm", m.Pixels, m.CM)
	}
	if s.State() != StateEmpty {
		t.Errorf("state: got %v, want empty", s.State())
	}
	if len(s.Pending()) != 0 {
		t.Errorf("buffer should be empty after a pair, got %v", s.Pending())
	}
	if got := s.Canvas().NRGBAAt(60, 100); got != palette.Line {
		t.Errorf("line midpoint: got %v, want line colour", got)
	}
	if got, want := out.String(), "Measured Distance: 100.0px / 2.6cm\n"; got != want {
		t.Errorf("output: got %q, want %q", got, want)
	}

	textPixels := 0
	for y := OverlayOrigin.Y - 13; y <= OverlayOrigin.Y+3; y++ {
		for x := OverlayOrigin.X; x < OverlayOrigin.X+imaging.TextWidth(m.Overlay()); x++ {
			if s.Canvas().NRGBAAt(x, y) == palette.Text {
				textPixels++
			}
		}
	}
	if textPixels == 0 {
		t.Error("expected distance overlay near the fixed origin")
	}

	last, ok := s.LastMeasurement()
	if !ok || last != m {
		t.Errorf("LastMeasurement: got %+v (%t), want %+v", last, ok, m)
	}
}

func TestSession_BufferNeverExceedsOne(t *testing.T) {
	s, out := newTestSession(t, 300, 300)
	clicks := []image.Point{
		{10, 10}, {13, 14}, {100, 100}, {100, 200}, {250, 20}, {20, 250}, {5, 5},
	}

	for i, p := range clicks {
		s.HandleClick(p)
		if n := len(s.Pending()); n > 1 {
			t.Fatalf("after click %d: %d points buffered", i+1, n)
		}
		wantState := StateEmpty
		if i%2 == 0 {
			wantState = StateWaiting
		}
		if s.State() != wantState {
			t.Errorf("after click %d: state %v, want %v", i+1, s.State(), wantState)
		}
	}

	ms := s.Measurements()
	if len(ms) != 3 {
		t.Fatalf("got %d measurements, want 3", len(ms))
	}
	if ms[0].Pixels != 5 || ms[1].Pixels != 100 {
		t.Errorf("distances: got %v, %v", ms[0].Pixels, ms[1].Pixels)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 3 {
		t.Errorf("printed %d lines, want 3", lines)
	}
	if len(s.Pending()) != 1 || s.Pending()[0] != image.Pt(5, 5) {
		t.Errorf("unpaired last click should stay buffered, got %v", s.Pending())
	}
}

func TestSession_NoMeasurementYet(t *testing.T) {
	s, _ := newTestSession(t, 10, 10)
	if _, ok := s.LastMeasurement(); ok {
		t.Error("new session should have no measurement")
	}
	if len(s.Measurements()) != 0 {
		t.Error("new session should have no measurements")
	}
}

func TestSession_Objects(t *testing.T) {
	s, _ := newTestSession(t, 10, 10)
	objects := []detection.Object{
		{Rect: detection.Rect{X: 0, Y: 0, Width: 20, Height: 20}, WidthCM: 0.52, HeightCM: 0.52},
		{Rect: detection.Rect{X: 40, Y: 10, Width: 50, Height: 25}, WidthCM: 1.3, HeightCM: 0.65},
	}
	s.AddObjects(objects...)

	if got := s.Objects(); len(got) != 2 || got[1] != objects[1] {
		t.Errorf("Objects: got %+v", got)
	}

	want := []string{
		"Object at (0, 0): Width=0.52cm, Height=0.52cm",
		"Object at (40, 10): Width=1.3cm, Height=0.65cm",
	}
	records := s.Records()
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d: got %q, want %q", i, records[i], want[i])
		}
	}
}

func TestSession_NilWriters(t *testing.T) {
	canvas := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	s := NewSession(canvas, units.DefaultScale, imaging.DefaultPalette(), nil, nil)

	s.HandleClick(image.Pt(1, 1))
	if _, ok := s.HandleClick(image.Pt(4, 5)); !ok {
		t.Error("expected a measurement")
	}
	if s.Scale() != units.DefaultScale {
		t.Errorf("scale: got %v", s.Scale())
	}
}
