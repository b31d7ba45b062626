package analyst

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
)

// Stream decodes a newline-delimited analyst response body into Events.
// It is a single-traversal pull iterator: events are decoded lazily as
// Next is called, and an exhausted stream cannot be restarted.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	logger  *log.Logger

	pending string // label of the event whose data line is expected next
	queue   []Event
	closed  bool
}

// NewStream wraps a response body. The stream takes ownership of the body
// and closes it when the traversal terminates.
func NewStream(body io.ReadCloser, logger *log.Logger) *Stream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{
		body:    body,
		scanner: sc,
		logger:  logger,
	}
}

// Next returns the next event in stream order. The second return is false
// once the stream is exhausted; after that every call returns (nil, false).
func (s *Stream) Next() (Event, bool) {
	for {
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue = s.queue[1:]
			return ev, true
		}
		if s.closed {
			return nil, false
		}

		if !s.scanner.Scan() {
			s.terminate()
			if err := s.scanner.Err(); err != nil {
				// Mid-stream transport failure surfaces as one terminal
				// event; the raw error never reaches the caller.
				return ErrorEvent{Message: fmt.Sprintf("stream transport failed: %v", err)}, true
			}
			return nil, false
		}

		line := strings.TrimRight(s.scanner.Text(), "\r")
		switch {
		case line == "":
			// Blank separator, keeps the pending label.

		case strings.HasPrefix(line, "event:"):
			label := strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			if label == "done" {
				s.terminate()
				return nil, false
			}
			s.pending = label

		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			s.handleData(data)

		default:
			s.logger.Printf("[WARN] Unrecognized stream line skipped: %q", line)
		}
	}
}

func (s *Stream) handleData(data string) {
	switch s.pending {
	case "message.delta":
		events, err := decodeDelta(data)
		if err != nil {
			s.logger.Printf("[WARN] Malformed delta payload skipped: %v", err)
			return
		}
		s.queue = append(s.queue, events...)
	case "error":
		s.queue = append(s.queue, ErrorEvent{Message: data})
	default:
		// Data for an unknown label is dropped.
	}
}

func (s *Stream) terminate() {
	s.closed = true
	s.body.Close()
}

// decodeDelta expands one message.delta body into events, preserving the
// order of its content items. A single body may carry both text and tool
// result items.
func decodeDelta(data string) ([]Event, error) {
	var payload deltaPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}

	var events []Event
	for _, item := range payload.Delta.Content {
		switch item.Type {
		case "text":
			events = append(events, TextDelta{Text: item.Text})
		case "tool_results":
			if item.ToolResults == nil {
				continue
			}
			for _, inner := range item.ToolResults.Content {
				if inner.Type != "json" {
					continue
				}
				var result toolResultJSON
				if err := json.Unmarshal(inner.JSON, &result); err != nil {
					return nil, fmt.Errorf("tool result body: %w", err)
				}
				events = append(events, ToolResultDelta{
					SQL:            result.SQL,
					Interpretation: result.Text,
				})
			}
		}
	}
	return events, nil
}
