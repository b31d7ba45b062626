package analyst

import "encoding/json"

// Event is one semantic event decoded from an analyst response stream.
type Event interface {
	isEvent()
}

// TextDelta carries an incremental chunk of narrative text.
type TextDelta struct {
	Text string
}

// ToolResultDelta carries the structured payload of a text-to-SQL tool
// invocation: the generated statement and the model's interpretation of it.
type ToolResultDelta struct {
	SQL            string
	Interpretation string
}

// ErrorEvent carries a service-reported or transport-level failure. After a
// transport failure it is always the last event the stream yields.
type ErrorEvent struct {
	Message string
}

func (TextDelta) isEvent()       {}
func (ToolResultDelta) isEvent() {}
func (ErrorEvent) isEvent()      {}

// --- Wire payloads (internal to this package) ---

type deltaPayload struct {
	Delta struct {
		Content []deltaContentItem `json:"content"`
	} `json:"delta"`
}

type deltaContentItem struct {
	Type        string           `json:"type"`
	Text        string           `json:"text"`
	ToolResults *toolResultsBody `json:"tool_results"`
}

type toolResultsBody struct {
	Content []toolResultContentItem `json:"content"`
}

type toolResultContentItem struct {
	Type string          `json:"type"`
	JSON json.RawMessage `json:"json"`
}

type toolResultJSON struct {
	SQL  string `json:"sql"`
	Text string `json:"text"`
}
