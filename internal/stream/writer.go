package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tmaxmax/go-sse"
)

// Writer frames events onto an io.Writer. Each event is written as one self-contained
// newline-terminated line and flushed immediately when the underlying writer supports
// it, so the client can parse events as they arrive.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter wraps w for event output.
func NewWriter(w io.Writer) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// Content emits one text fragment event.
func (w *Writer) Content(text string) error {
	data, err := json.Marshal(payload{Content: text})
	if err != nil {
		return fmt.Errorf("failed to marshal content payload: %w", err)
	}
	return w.event(string(data))
}

// Done emits the stream terminator.
func (w *Writer) Done() error {
	return w.event(string(doneToken))
}

func (w *Writer) event(data string) error {
	msg := sse.Message{}
	msg.AppendData(data)

	if _, err := msg.WriteTo(w.w); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}
