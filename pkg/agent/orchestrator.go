package agent

import (
	"context"
	"log"
	"sync"

	"ai-travelplanner-be/pkg/extract"
)

// IntentResolver resolves the trip intent for a query. It never fails;
// unresolvable queries yield the default intent.
type IntentResolver interface {
	TripIntent(ctx context.Context, sessionID, query string) extract.TripIntent
}

// Actor IDs. Hotel actors are suffixed with their destination city so each
// city keeps its own memory lane.
const (
	FlightActorID      = "flight_agent"
	HotelActorIDPrefix = "hotel_agent:"
	ActivityActorID    = "activity_agent"
)

// PlanResult is the join of one orchestration: the resolved intent plus
// exactly one result per dispatched task, keyed by (domain, scope).
type PlanResult struct {
	Intent  extract.TripIntent
	Results map[string]Result
}

// Orchestrator fans a travel query out into per-domain tasks and joins
// them all. No task failure stops the others; the join always waits for
// every dispatched task.
type Orchestrator struct {
	pipeline *Pipeline
	resolver IntentResolver
	logger   *log.Logger
}

func NewOrchestrator(pipeline *Pipeline, resolver IntentResolver, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		pipeline: pipeline,
		resolver: resolver,
		logger:   logger,
	}
}

// Orchestrate resolves the trip intent once, builds the task fan-out and
// dispatches it on a bounded worker pool. limit caps concurrent workers;
// the pool never exceeds the number of tasks.
func (o *Orchestrator) Orchestrate(ctx context.Context, sessionID, query string, limit int, progress ProgressFunc) *PlanResult {
	intent := o.resolver.TripIntent(ctx, sessionID, query)
	tasks := o.buildTasks(sessionID, query, intent)

	workers := limit
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	o.logger.Printf("[PLAN] session=%s tasks=%d workers=%d dests=%v", sessionID, len(tasks), workers, intent.DestCities)

	jobs := make(chan Task)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- o.pipeline.Run(ctx, task, progress)
			}
		}()
	}

	go func() {
		for _, task := range tasks {
			jobs <- task
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	plan := &PlanResult{
		Intent:  intent,
		Results: make(map[string]Result, len(tasks)),
	}
	for result := range results {
		plan.Results[result.Key()] = result
	}
	return plan
}

// buildTasks produces the fan-out: one flight task over the whole query,
// one hotel task per destination city, one activity task.
func (o *Orchestrator) buildTasks(sessionID, query string, intent extract.TripIntent) []Task {
	tasks := []Task{
		{
			Domain:    DomainFlight,
			ActorID:   FlightActorID,
			SessionID: sessionID,
			Query:     query,
			Intent:    intent,
		},
	}
	for _, city := range intent.DestCities {
		tasks = append(tasks, Task{
			Domain:    DomainHotel,
			ScopeKey:  city,
			ActorID:   HotelActorIDPrefix + city,
			SessionID: sessionID,
			Query:     "Find hotels in " + city,
			Intent:    intent,
		})
	}
	tasks = append(tasks, Task{
		Domain:    DomainActivity,
		ActorID:   ActivityActorID,
		SessionID: sessionID,
		Query:     query,
		Intent:    intent,
	})
	return tasks
}
