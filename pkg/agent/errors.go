package agent

import "fmt"

// ErrorKind classifies a failure by the boundary it crossed.
type ErrorKind int

const (
	// KindTransport covers failures reaching a remote service at all.
	KindTransport ErrorKind = iota
	// KindProtocol covers service-reported errors inside a healthy stream.
	KindProtocol
	// KindExtractionMismatch covers model output that could not be read
	// into the expected structure.
	KindExtractionMismatch
	// KindQueryExecution covers downstream SQL or vector search failures.
	KindQueryExecution
	// KindStoreUnavailable covers memory persistence failures.
	KindStoreUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindExtractionMismatch:
		return "extraction_mismatch"
	case KindQueryExecution:
		return "query_execution"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// AgentError is the only error shape used inside the orchestration core.
// It never crosses a task boundary; tasks translate it into a
// failure-shaped result instead.
type AgentError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AgentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

func newAgentError(kind ErrorKind, message string, err error) *AgentError {
	return &AgentError{Kind: kind, Message: message, Err: err}
}
