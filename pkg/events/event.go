package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TASK_DONE").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used for both publishing and
// reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Planner event types.
const (
	TypeTaskStarted = "TASK_STARTED"
	TypeTaskState   = "TASK_STATE"
	TypeTaskDone    = "TASK_DONE"
	TypeTaskFailed  = "TASK_FAILED"
	TypePlanDone    = "PLAN_DONE"
)

// NewPlannerEvent builds a planner event carrying the session it belongs
// to, so subscribers can route it to the right websocket clients.
func NewPlannerEvent(eventType, sessionID string, data map[string]interface{}) BaseEvent {
	payload := map[string]interface{}{
		"session_id": sessionID,
	}
	for k, v := range data {
		payload[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
}
