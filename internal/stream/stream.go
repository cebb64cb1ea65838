// Package stream implements the line-oriented event protocol spoken between the chat
// relay and the browser. Each event occupies one line of the response body, prefixed
// with the SSE data marker and carrying either a JSON payload or the literal
// terminator token.
package stream

// EventType discriminates the wire-level event variants.
type EventType string

const (
	// EventContent carries one incremental text fragment of the reply.
	EventContent EventType = "content"
	// EventError carries a user-facing error raised mid-stream.
	EventError EventType = "error"
	// EventDone is the terminator, always the last event of a stream.
	EventDone EventType = "done"
)

// Event is one decoded wire event.
type Event struct {
	Type EventType

	// Content would be filled if Type is EventContent.
	Content string
	// Err would be filled if Type is EventError.
	Err string
}

var (
	dataMarker = []byte("data: ")
	doneToken  = []byte("[DONE]")
)

type payload struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}
