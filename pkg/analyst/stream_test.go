package analyst

import (
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func collect(s *Stream) []Event {
	var events []Event
	for {
		ev, ok := s.Next()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestStreamDecodesDeltaInPayloadOrder(t *testing.T) {
	body := strings.Join([]string{
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"Looking up flights. "},{"type":"tool_results","tool_results":{"content":[{"type":"json","json":{"sql":"SELECT * FROM flights","text":"All flights"}}]}},{"type":"text","text":"Done."}]}}`,
		"",
		"event: done",
		"",
	}, "\n")

	events := collect(NewStream(io.NopCloser(strings.NewReader(body)), testLogger()))

	require.Len(t, events, 3)
	assert.Equal(t, TextDelta{Text: "Looking up flights. "}, events[0])
	assert.Equal(t, ToolResultDelta{SQL: "SELECT * FROM flights", Interpretation: "All flights"}, events[1])
	assert.Equal(t, TextDelta{Text: "Done."}, events[2])
}

func TestStreamTerminatesOnDone(t *testing.T) {
	body := strings.Join([]string{
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"partial"}]}}`,
		"event: done",
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"never seen"}]}}`,
	}, "\n")

	s := NewStream(io.NopCloser(strings.NewReader(body)), testLogger())
	events := collect(s)

	require.Len(t, events, 1)
	assert.Equal(t, TextDelta{Text: "partial"}, events[0])

	// Exhausted streams stay exhausted
	_, ok := s.Next()
	assert.False(t, ok)
}

func TestStreamSkipsMalformedData(t *testing.T) {
	body := strings.Join([]string{
		"event: message.delta",
		`data: {not json at all`,
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"recovered"}]}}`,
		"event: done",
	}, "\n")

	events := collect(NewStream(io.NopCloser(strings.NewReader(body)), testLogger()))

	require.Len(t, events, 1)
	assert.Equal(t, TextDelta{Text: "recovered"}, events[0])
}

func TestStreamDropsUnknownLabels(t *testing.T) {
	body := strings.Join([]string{
		"event: message.ping",
		`data: {"anything":"goes"}`,
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"kept"}]}}`,
		"event: done",
	}, "\n")

	events := collect(NewStream(io.NopCloser(strings.NewReader(body)), testLogger()))

	require.Len(t, events, 1)
	assert.Equal(t, TextDelta{Text: "kept"}, events[0])
}

func TestStreamBlankLinesDoNotResetState(t *testing.T) {
	body := strings.Join([]string{
		"event: message.delta",
		"",
		"",
		`data: {"delta":{"content":[{"type":"text","text":"after blanks"}]}}`,
		"event: done",
	}, "\n")

	events := collect(NewStream(io.NopCloser(strings.NewReader(body)), testLogger()))

	require.Len(t, events, 1)
	assert.Equal(t, TextDelta{Text: "after blanks"}, events[0])
}

func TestStreamErrorEventPassesThrough(t *testing.T) {
	body := strings.Join([]string{
		"event: error",
		`data: {"code":"390112","message":"warehouse suspended"}`,
		"event: done",
	}, "\n")

	events := collect(NewStream(io.NopCloser(strings.NewReader(body)), testLogger()))

	require.Len(t, events, 1)
	ev, isErr := events[0].(ErrorEvent)
	require.True(t, isErr)
	assert.Contains(t, ev.Message, "warehouse suspended")
}

type brokenReader struct {
	prefix io.Reader
	err    error
}

func (b *brokenReader) Read(p []byte) (int, error) {
	n, err := b.prefix.Read(p)
	if n > 0 {
		return n, nil
	}
	if errors.Is(err, io.EOF) {
		return 0, b.err
	}
	return n, err
}

func (b *brokenReader) Close() error { return nil }

func TestStreamTransportFailureYieldsSingleTerminalError(t *testing.T) {
	prefix := "event: message.delta\n" +
		`data: {"delta":{"content":[{"type":"text","text":"before the cut"}]}}` + "\n"
	body := &brokenReader{
		prefix: strings.NewReader(prefix),
		err:    errors.New("connection reset by peer"),
	}

	s := NewStream(body, testLogger())
	events := collect(s)

	require.Len(t, events, 2)
	assert.Equal(t, TextDelta{Text: "before the cut"}, events[0])
	ev, isErr := events[1].(ErrorEvent)
	require.True(t, isErr)
	assert.Contains(t, ev.Message, "connection reset by peer")

	_, ok := s.Next()
	assert.False(t, ok)
}

func TestStreamMultipleDeltasKeepArrivalOrder(t *testing.T) {
	body := strings.Join([]string{
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"one"}]}}`,
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"text","text":"two"}]}}`,
		"event: message.delta",
		`data: {"delta":{"content":[{"type":"tool_results","tool_results":{"content":[{"type":"json","json":{"sql":"SELECT 1","text":"trivial"}}]}}]}}`,
		"event: done",
	}, "\n")

	events := collect(NewStream(io.NopCloser(strings.NewReader(body)), testLogger()))

	require.Len(t, events, 3)
	assert.Equal(t, TextDelta{Text: "one"}, events[0])
	assert.Equal(t, TextDelta{Text: "two"}, events[1])
	assert.Equal(t, ToolResultDelta{SQL: "SELECT 1", Interpretation: "trivial"}, events[2])
}
