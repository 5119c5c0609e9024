package display

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"
)

// Event is one line of the stream protocol:
//
//	{"type":"click","x":120,"y":45}
//	{"type":"key","key":"q"}
type Event struct {
	Type string `json:"type"`
	X    int    `json:"x,omitempty"`
	Y    int    `json:"y,omitempty"`
	Key  string `json:"key,omitempty"`
}

// Event types understood by Stream.
const (
	EventClick = "click"
	EventKey   = "key"
)

// Stream reads pointer and key events as newline-delimited JSON. A key event
// or the end of input dismisses it.
type Stream struct {
	r   io.Reader
	log logrus.FieldLogger
}

// NewStream creates a stream surface reading from r.
func NewStream(r io.Reader, log logrus.FieldLogger) *Stream {
	return &Stream{r: r, log: orDiscard(log)}
}

// Show reads events until a key event, end of input or cancellation.
// Malformed lines and unknown event types are logged and skipped.
// Cancellation is noticed between lines; a blocked read is not interrupted.
func (s *Stream) Show(ctx context.Context, canvas *image.NRGBA, onClick ClickFunc) error {
	scanner := bufio.NewScanner(s.r)
	buf := make([]byte, 0, 4*1024)
	scanner.Buffer(buf, 64*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			s.log.WithError(err).Warn("failed to parse event")
			continue
		}

		switch ev.Type {
		case EventClick:
			deliver(canvas, image.Pt(ev.X, ev.Y), onClick, s.log)
		case EventKey:
			s.log.WithField("key", ev.Key).Debug("key pressed, closing")
			return nil
		default:
			s.log.WithField("type", ev.Type).Warn("unknown event type")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the reader.
func (s *Stream) Close() error {
	return nil
}
