package agent

import (
	"ai-travelplanner-be/pkg/extract"
	"ai-travelplanner-be/pkg/warehouse"
)

// Domain names
const (
	DomainFlight   = "flight"
	DomainHotel    = "hotel"
	DomainActivity = "activity"
)

// Task is one unit of agent work. ScopeKey narrows a domain to a single
// subject, e.g. the destination city of a hotel search; it is empty for
// whole-query domains.
type Task struct {
	Domain    string
	ScopeKey  string
	ActorID   string
	SessionID string
	Query     string

	// Intent is the once-resolved trip reading shared by every task of an
	// orchestration. The activity domain plans against it.
	Intent extract.TripIntent
}

// Key identifies a task inside one orchestration.
func (t Task) Key() string {
	if t.ScopeKey == "" {
		return t.Domain
	}
	return t.Domain + ":" + t.ScopeKey
}

// State is a pipeline phase, reported through the progress callback in
// order of execution.
type State int

const (
	StateLoadContext State = iota
	StateExtractIntent
	StateStreamQuery
	StateRunQuery
	StateRank
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoadContext:
		return "load_context"
	case StateExtractIntent:
		return "extract_intent"
	case StateStreamQuery:
		return "stream_query"
	case StateRunQuery:
		return "run_query"
	case StateRank:
		return "rank"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressFunc observes task state transitions. Callbacks must not block.
type ProgressFunc func(task Task, state State)

// Result is the single outcome every task produces, failed or not. Failed
// results keep whatever partial fields were produced before the failure
// and explain it in Error; data fields that were never reached stay nil.
type Result struct {
	Domain   string
	ScopeKey string
	ActorID  string

	StreamedText   string
	Interpretation string
	SQL            string
	Rows           *warehouse.ResultSet
	Summary        string

	Failed bool
	Error  string
}

// Key matches the key of the task that produced this result.
func (r Result) Key() string {
	if r.ScopeKey == "" {
		return r.Domain
	}
	return r.Domain + ":" + r.ScopeKey
}
