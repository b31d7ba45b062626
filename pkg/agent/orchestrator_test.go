package agent

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-travelplanner-be/pkg/extract"
	"ai-travelplanner-be/pkg/warehouse"
)

type fakeResolver struct {
	intent extract.TripIntent
}

func (f *fakeResolver) TripIntent(context.Context, string, string) extract.TripIntent {
	return f.intent
}

func twoCityIntent() extract.TripIntent {
	duration := 7
	return extract.TripIntent{
		SourceCity: "Delhi",
		DestCities: []string{"Mumbai", "Pune"},
		Duration:   &duration,
	}
}

func newTestOrchestrator(streamer QueryStreamer, searcher ActivitySearcher, intent extract.TripIntent) *Orchestrator {
	rows := &warehouse.ResultSet{Columns: []string{"X"}, Rows: [][]string{{"1"}}}
	pipeline := newTestPipeline(newFakeMemory(), streamer, &fakeRunner{rows: rows}, searcher, &fakeRanker{})
	return NewOrchestrator(pipeline, &fakeResolver{intent: intent}, discardLogger())
}

func TestOrchestrateTwoCitiesYieldsFourTasks(t *testing.T) {
	o := newTestOrchestrator(&fakeStreamer{fallback: flightStreamBody}, &fakeSearcher{}, twoCityIntent())

	plan := o.Orchestrate(context.Background(), "s1", "Plan a trip from Delhi to Mumbai and Pune", 3, nil)

	require.Len(t, plan.Results, 4)
	assert.Contains(t, plan.Results, "flight")
	assert.Contains(t, plan.Results, "hotel:Mumbai")
	assert.Contains(t, plan.Results, "hotel:Pune")
	assert.Contains(t, plan.Results, "activity")
	assert.Equal(t, twoCityIntent(), plan.Intent)
}

func TestOrchestrateHotelQueriesAreCityScoped(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]string)
	o := newTestOrchestrator(&fakeStreamer{fallback: flightStreamBody}, &fakeSearcher{}, twoCityIntent())

	o.Orchestrate(context.Background(), "s1", "Plan a trip", 2, func(task Task, state State) {
		if state != StateLoadContext {
			return
		}
		mu.Lock()
		seen[task.Key()] = task.Query
		mu.Unlock()
	})

	assert.Equal(t, "Find hotels in Mumbai", seen["hotel:Mumbai"])
	assert.Equal(t, "Find hotels in Pune", seen["hotel:Pune"])
}

func TestOrchestrateOneFailureDoesNotStopTheRest(t *testing.T) {
	// The Pune hotel task hits a dead analyst; every other task completes.
	streamer := &fakeStreamer{fallback: flightStreamBody, failFor: "Pune"}
	o := newTestOrchestrator(streamer, &fakeSearcher{}, twoCityIntent())

	plan := o.Orchestrate(context.Background(), "s1", "Plan a trip", 4, nil)

	require.Len(t, plan.Results, 4)
	failed := 0
	for _, result := range plan.Results {
		if result.Failed {
			failed++
			assert.Equal(t, "hotel:Pune", result.Key())
			assert.NotEmpty(t, result.Error)
			assert.Nil(t, result.Rows)
		}
	}
	assert.Equal(t, 1, failed)
	assert.False(t, plan.Results["flight"].Failed)
	assert.False(t, plan.Results["hotel:Mumbai"].Failed)
	assert.False(t, plan.Results["activity"].Failed)
}

func TestOrchestrateManyCitiesAllResultsReturned(t *testing.T) {
	cities := []string{"Mumbai", "Pune", "Goa", "Jaipur", "Kochi"}
	intent := extract.TripIntent{SourceCity: "Delhi", DestCities: cities}
	streamer := &fakeStreamer{fallback: flightStreamBody, failFor: "Goa"}
	o := newTestOrchestrator(streamer, &fakeSearcher{}, intent)

	plan := o.Orchestrate(context.Background(), "s1", "Plan a trip", 2, nil)

	// 1 flight + 5 hotels + 1 activity, with exactly one induced failure.
	require.Len(t, plan.Results, 7)
	failed := 0
	for _, result := range plan.Results {
		if result.Failed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.True(t, plan.Results["hotel:Goa"].Failed)
}

func TestOrchestrateSingleWorkerStillJoinsAll(t *testing.T) {
	o := newTestOrchestrator(&fakeStreamer{fallback: flightStreamBody}, &fakeSearcher{}, twoCityIntent())

	plan := o.Orchestrate(context.Background(), "s1", "Plan a trip", 1, nil)

	assert.Len(t, plan.Results, 4)
}

func TestOrchestrateNoDestinations(t *testing.T) {
	o := newTestOrchestrator(&fakeStreamer{fallback: flightStreamBody}, &fakeSearcher{}, extract.TripIntent{DestCities: []string{}})

	plan := o.Orchestrate(context.Background(), "s1", "Plan something", 4, nil)

	// Just the flight and activity tasks remain.
	require.Len(t, plan.Results, 2)
	assert.Contains(t, plan.Results, "flight")
	assert.Contains(t, plan.Results, "activity")
}

func TestOrchestrateCancelledContextStillReturnsAllResults(t *testing.T) {
	o := newTestOrchestrator(&fakeStreamer{fallback: flightStreamBody}, &fakeSearcher{}, twoCityIntent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	plan := o.Orchestrate(ctx, "s1", "Plan a trip", 4, nil)

	require.Len(t, plan.Results, 4)
	for _, result := range plan.Results {
		assert.True(t, result.Failed)
	}
}
