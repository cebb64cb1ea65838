package stream

import (
	"bytes"
	"encoding/json"
)

// Decoder incrementally parses the event protocol from arbitrary byte chunks. Chunk
// boundaries carry no meaning; a line split across any number of Feed calls decodes
// identically to one delivered whole. The zero value is ready to use.
type Decoder struct {
	buf     []byte
	dropped int
}

// Feed appends p to the internal buffer and returns every complete event it now
// holds. Lines without the data marker are ignored, and marker lines whose JSON
// payload does not parse are skipped without aborting the stream.
func (d *Decoder) Feed(p []byte) []Event {
	d.buf = append(d.buf, p...)

	var events []Event
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			return events
		}
		line := bytes.TrimSpace(d.buf[:i])
		d.buf = d.buf[i+1:]

		if !bytes.HasPrefix(line, dataMarker) {
			continue
		}
		data := bytes.TrimSpace(line[len(dataMarker):])
		if len(data) == 0 {
			continue
		}

		if bytes.Equal(data, doneToken) {
			events = append(events, Event{Type: EventDone})
			continue
		}

		var pl payload
		if err := json.Unmarshal(data, &pl); err != nil {
			d.dropped++
			continue
		}
		if pl.Error != "" {
			events = append(events, Event{Type: EventError, Err: pl.Error})
			continue
		}
		if pl.Content != "" {
			events = append(events, Event{Type: EventContent, Content: pl.Content})
		}
	}
}

// Dropped reports how many marker lines were skipped because their payload did not
// parse as JSON.
func (d *Decoder) Dropped() int {
	return d.dropped
}
