package stream_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jacobjk03/Portfolio/internal/stream"
)

func TestDecoderFragmentOrder(t *testing.T) {
	input := "data: {\"content\":\"Hel\"}\n\n" +
		"data: {\"content\":\"lo\"}\n\n" +
		"data: {\"content\":\" there\"}\n\n" +
		"data: [DONE]\n\n"

	tests := []struct {
		name      string
		chunkSize int
	}{
		{name: "whole buffer", chunkSize: len(input)},
		{name: "small chunks", chunkSize: 7},
		{name: "one byte at a time", chunkSize: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := &stream.Decoder{}
			var events []stream.Event
			for i := 0; i < len(input); i += tt.chunkSize {
				end := i + tt.chunkSize
				if end > len(input) {
					end = len(input)
				}
				events = append(events, dec.Feed([]byte(input[i:end]))...)
			}

			if len(events) != 4 {
				t.Fatalf("Feed() produced %d events, want 4", len(events))
			}

			var sb strings.Builder
			for _, ev := range events[:3] {
				if ev.Type != stream.EventContent {
					t.Fatalf("event type = %v, want %v", ev.Type, stream.EventContent)
				}
				sb.WriteString(ev.Content)
			}
			if sb.String() != "Hello there" {
				t.Errorf("concatenated content = %q, want %q", sb.String(), "Hello there")
			}
			if events[3].Type != stream.EventDone {
				t.Errorf("final event type = %v, want %v", events[3].Type, stream.EventDone)
			}
		})
	}
}

func TestDecoderSkipsMalformedLines(t *testing.T) {
	dec := &stream.Decoder{}

	input := "data: {\"content\":\"ok\"}\n\n" +
		"data: {not json}\n\n" +
		"data: {\"content\":\"still ok\"}\n\n" +
		"data: [DONE]\n\n"

	events := dec.Feed([]byte(input))

	if len(events) != 3 {
		t.Fatalf("Feed() produced %d events, want 3", len(events))
	}
	if events[0].Content != "ok" || events[1].Content != "still ok" {
		t.Errorf("content events = %q, %q, want %q, %q", events[0].Content, events[1].Content, "ok", "still ok")
	}
	if events[2].Type != stream.EventDone {
		t.Errorf("final event type = %v, want %v", events[2].Type, stream.EventDone)
	}
	if dec.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", dec.Dropped())
	}
}

func TestDecoderIgnoresNonDataLines(t *testing.T) {
	dec := &stream.Decoder{}

	input := ": comment\n" +
		"event: custom\n" +
		"data: {\"content\":\"hi\"}\n\n"

	events := dec.Feed([]byte(input))

	if len(events) != 1 {
		t.Fatalf("Feed() produced %d events, want 1", len(events))
	}
	if events[0].Type != stream.EventContent || events[0].Content != "hi" {
		t.Errorf("event = %+v, want content %q", events[0], "hi")
	}
	if dec.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", dec.Dropped())
	}
}

func TestDecoderErrorEvent(t *testing.T) {
	dec := &stream.Decoder{}

	events := dec.Feed([]byte("data: {\"error\":\"boom\"}\n\n"))

	if len(events) != 1 {
		t.Fatalf("Feed() produced %d events, want 1", len(events))
	}
	if events[0].Type != stream.EventError || events[0].Err != "boom" {
		t.Errorf("event = %+v, want error %q", events[0], "boom")
	}
}

func TestDecoderHoldsIncompleteLine(t *testing.T) {
	dec := &stream.Decoder{}

	if events := dec.Feed([]byte("data: {\"content\":\"par")); len(events) != 0 {
		t.Fatalf("Feed() produced %d events for incomplete line, want 0", len(events))
	}
	events := dec.Feed([]byte("tial\"}\n"))
	if len(events) != 1 || events[0].Content != "partial" {
		t.Fatalf("Feed() after completion = %+v, want one %q content event", events, "partial")
	}
}

func TestWriterFraming(t *testing.T) {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)

	if err := w.Content("Hel"); err != nil {
		t.Fatalf("Content() error = %v", err)
	}
	if err := w.Done(); err != nil {
		t.Fatalf("Done() error = %v", err)
	}

	want := "data: {\"content\":\"Hel\"}\n\ndata: [DONE]\n\n"
	if buf.String() != want {
		t.Errorf("framed bytes = %q, want %q", buf.String(), want)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)

	fragments := []string{"with \"quotes\"", "and\nnewline?", "日本語"}
	for _, fragment := range fragments {
		if err := w.Content(fragment); err != nil {
			t.Fatalf("Content(%q) error = %v", fragment, err)
		}
	}
	if err := w.Done(); err != nil {
		t.Fatalf("Done() error = %v", err)
	}

	dec := &stream.Decoder{}
	events := dec.Feed(buf.Bytes())

	if len(events) != len(fragments)+1 {
		t.Fatalf("decoded %d events, want %d", len(events), len(fragments)+1)
	}
	for i, fragment := range fragments {
		if events[i].Content != fragment {
			t.Errorf("event %d content = %q, want %q", i, events[i].Content, fragment)
		}
	}
	if events[len(events)-1].Type != stream.EventDone {
		t.Errorf("final event type = %v, want %v", events[len(events)-1].Type, stream.EventDone)
	}
}
