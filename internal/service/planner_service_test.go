package service

import (
	"testing"
	"time"

	"ai-travelplanner-be/pkg/agent"

	"github.com/stretchr/testify/assert"
)

// Bootstrap continues with a nil publisher when NATS is unreachable, and
// the progress callback fires inside the orchestrator's worker goroutines,
// so publishing task events must survive a missing bus.
func TestPublishTaskEventWithoutBus(t *testing.T) {
	s := &plannerService{}

	task := agent.Task{
		Domain:    agent.DomainFlight,
		ActorID:   agent.FlightActorID,
		SessionID: "session-1",
		Query:     "Plan a trip from Delhi to Mumbai",
	}

	states := []agent.State{
		agent.StateLoadContext,
		agent.StateStreamQuery,
		agent.StateRunQuery,
		agent.StateRank,
		agent.StateDone,
		agent.StateFailed,
	}
	for _, state := range states {
		assert.NotPanics(t, func() {
			s.publishTaskEvent(task.SessionID, task, state)
		})
	}
}

// The orchestrator documents progress callbacks as non-blocking; a full
// fan-out of state changes must come back well under any bus timeout.
func TestPublishTaskEventReturnsPromptly(t *testing.T) {
	s := &plannerService{}

	task := agent.Task{
		Domain:    agent.DomainHotel,
		ScopeKey:  "Mumbai",
		ActorID:   agent.HotelActorIDPrefix + "Mumbai",
		SessionID: "session-1",
		Query:     "Find hotels in Mumbai",
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			s.publishTaskEvent(task.SessionID, task, agent.StateStreamQuery)
		}
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("task event publishing blocked the progress callback")
	}
}
