package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-travelplanner-be/pkg/analyst"
	"ai-travelplanner-be/pkg/extract"
	"ai-travelplanner-be/pkg/memory"
	"ai-travelplanner-be/pkg/warehouse"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// --- Fakes ---

type fakeMemory struct {
	mu        sync.Mutex
	turns     map[memory.ActorSession][]memory.Turn
	appendErr error
	lastKErr  error
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{turns: make(map[memory.ActorSession][]memory.Turn)}
}

func (f *fakeMemory) Append(_ context.Context, as memory.ActorSession, role, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.turns[as] = append(f.turns[as], memory.Turn{Role: role, Text: text})
	return nil
}

func (f *fakeMemory) LastK(_ context.Context, as memory.ActorSession, k int) []memory.Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastKErr != nil {
		return nil
	}
	history := f.turns[as]
	if len(history) > k {
		history = history[len(history)-k:]
	}
	return history
}

func (f *fakeMemory) recorded(as memory.ActorSession) []memory.Turn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]memory.Turn(nil), f.turns[as]...)
}

// fakeStreamer serves canned stream bodies keyed by substring of the query.
type fakeStreamer struct {
	bodies   map[string]string
	failFor  string
	fallback string
}

func (f *fakeStreamer) StreamQuery(_ context.Context, query string) (EventStream, error) {
	if f.failFor != "" && strings.Contains(query, f.failFor) {
		return nil, errors.New("dial tcp: connection refused")
	}
	for needle, body := range f.bodies {
		if strings.Contains(query, needle) {
			return analyst.NewStream(io.NopCloser(strings.NewReader(body)), discardLogger()), nil
		}
	}
	return analyst.NewStream(io.NopCloser(strings.NewReader(f.fallback)), discardLogger()), nil
}

type fakeRunner struct {
	rows *warehouse.ResultSet
	err  error
}

func (f *fakeRunner) Run(context.Context, string) (*warehouse.ResultSet, error) {
	return f.rows, f.err
}

type fakeSearcher struct {
	byCity map[string]*warehouse.ResultSet
	errFor string
}

func (f *fakeSearcher) Search(_ context.Context, city string, _ *int, _ int) (*warehouse.ResultSet, error) {
	if city == f.errFor {
		return nil, errors.New("index scan failed")
	}
	return f.byCity[city], nil
}

type fakeRanker struct {
	bestErr error
	planErr error
	calls   int
}

func (f *fakeRanker) BestOptions(_ context.Context, domain, _ string, _ *warehouse.ResultSet) (string, error) {
	f.calls++
	if f.bestErr != nil {
		return "", f.bestErr
	}
	return "top 3 " + domain + " options", nil
}

func (f *fakeRanker) DaywisePlan(_ context.Context, _, _ string, cities []string, _ *warehouse.ResultSet) (string, error) {
	f.calls++
	if f.planErr != nil {
		return "", f.planErr
	}
	return fmt.Sprintf("day-wise plan across %s", strings.Join(cities, ", ")), nil
}

const flightStreamBody = "event: message.delta\n" +
	`data: {"delta":{"content":[{"type":"text","text":"Searching flights. "},{"type":"tool_results","tool_results":{"content":[{"type":"json","json":{"sql":"SELECT * FROM flight_options","text":"All flight options"}}]}}]}}` + "\n" +
	"event: done\n"

const textOnlyStreamBody = "event: message.delta\n" +
	`data: {"delta":{"content":[{"type":"text","text":"I could not derive a query."}]}}` + "\n" +
	"event: done\n"

const errorStreamBody = "event: message.delta\n" +
	`data: {"delta":{"content":[{"type":"text","text":"partial answer"}]}}` + "\n" +
	"event: error\n" +
	`data: {"message":"analyst quota exceeded"}` + "\n" +
	"event: done\n"

func newTestPipeline(mem MemoryStore, streamer QueryStreamer, runner SQLRunner, searcher ActivitySearcher, ranker OptionRanker) *Pipeline {
	return NewPipeline(mem, streamer, runner, searcher, ranker, 5, 10, time.Second, discardLogger())
}

func flightTask() Task {
	return Task{
		Domain:    DomainFlight,
		ActorID:   FlightActorID,
		SessionID: "s1",
		Query:     "Plan a trip from Delhi to Goa",
	}
}

// --- Tests ---

func TestPipelineHappyPath(t *testing.T) {
	mem := newFakeMemory()
	rows := &warehouse.ResultSet{Columns: []string{"AIRLINE"}, Rows: [][]string{{"IndiGo"}}}
	p := newTestPipeline(mem, &fakeStreamer{fallback: flightStreamBody}, &fakeRunner{rows: rows}, &fakeSearcher{}, &fakeRanker{})

	var states []State
	result := p.Run(context.Background(), flightTask(), func(_ Task, s State) {
		states = append(states, s)
	})

	assert.False(t, result.Failed)
	assert.Equal(t, "Searching flights. ", result.StreamedText)
	assert.Equal(t, "SELECT * FROM flight_options", result.SQL)
	assert.Equal(t, "All flight options", result.Interpretation)
	require.NotNil(t, result.Rows)
	assert.Equal(t, "top 3 flight options", result.Summary)
	assert.Equal(t, []State{StateLoadContext, StateStreamQuery, StateRunQuery, StateRank, StateDone}, states)

	turns := mem.recorded(memory.ActorSession{ActorID: FlightActorID, SessionID: "s1"})
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "assistant", turns[1].Role)
	assert.Equal(t, "top 3 flight options", turns[1].Text)
}

func TestPipelineNoSQLSkipsQueryAndRank(t *testing.T) {
	ranker := &fakeRanker{}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{fallback: textOnlyStreamBody}, &fakeRunner{}, &fakeSearcher{}, ranker)

	result := p.Run(context.Background(), flightTask(), nil)

	assert.False(t, result.Failed)
	assert.Equal(t, "I could not derive a query.", result.StreamedText)
	assert.Empty(t, result.SQL)
	assert.Nil(t, result.Rows)
	assert.Empty(t, result.Summary)
	assert.Zero(t, ranker.calls)
}

func TestPipelineTransportFailureIsTerminal(t *testing.T) {
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{failFor: "Delhi"}, &fakeRunner{}, &fakeSearcher{}, &fakeRanker{})

	var states []State
	result := p.Run(context.Background(), flightTask(), func(_ Task, s State) {
		states = append(states, s)
	})

	assert.True(t, result.Failed)
	assert.Contains(t, result.Error, "analyst unreachable")
	assert.Nil(t, result.Rows)
	assert.Empty(t, result.Summary)
	assert.Equal(t, StateFailed, states[len(states)-1])
}

func TestPipelineStreamErrorKeepsPartials(t *testing.T) {
	runner := &fakeRunner{rows: &warehouse.ResultSet{Columns: []string{"X"}, Rows: [][]string{{"1"}}}}
	ranker := &fakeRanker{}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{fallback: errorStreamBody}, runner, &fakeSearcher{}, ranker)

	result := p.Run(context.Background(), flightTask(), nil)

	assert.False(t, result.Failed)
	assert.Equal(t, "partial answer", result.StreamedText)
	assert.Contains(t, result.Error, "analyst quota exceeded")
	assert.Nil(t, result.Rows)
	assert.Zero(t, ranker.calls)
}

func TestPipelineQueryFailureDegrades(t *testing.T) {
	ranker := &fakeRanker{}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{fallback: flightStreamBody}, &fakeRunner{err: errors.New("syntax error at or near FROM")}, &fakeSearcher{}, ranker)

	result := p.Run(context.Background(), flightTask(), nil)

	assert.False(t, result.Failed)
	assert.Equal(t, "SELECT * FROM flight_options", result.SQL)
	assert.Nil(t, result.Rows)
	assert.Empty(t, result.Summary)
	assert.Zero(t, ranker.calls)
}

func TestPipelineRankFailureDegrades(t *testing.T) {
	rows := &warehouse.ResultSet{Columns: []string{"AIRLINE"}, Rows: [][]string{{"IndiGo"}}}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{fallback: flightStreamBody}, &fakeRunner{rows: rows}, &fakeSearcher{}, &fakeRanker{bestErr: errors.New("model overloaded")})

	result := p.Run(context.Background(), flightTask(), nil)

	assert.False(t, result.Failed)
	require.NotNil(t, result.Rows)
	assert.Empty(t, result.Summary)
}

func TestPipelineMemoryFailuresNeverFailTask(t *testing.T) {
	mem := newFakeMemory()
	mem.appendErr = errors.New("connection refused")
	mem.lastKErr = errors.New("connection refused")
	rows := &warehouse.ResultSet{Columns: []string{"AIRLINE"}, Rows: [][]string{{"IndiGo"}}}
	p := newTestPipeline(mem, &fakeStreamer{fallback: flightStreamBody}, &fakeRunner{rows: rows}, &fakeSearcher{}, &fakeRanker{})

	result := p.Run(context.Background(), flightTask(), nil)

	assert.False(t, result.Failed)
	assert.Equal(t, "top 3 flight options", result.Summary)
}

func TestPipelineCancelledTaskWritesNoTurn(t *testing.T) {
	mem := newFakeMemory()
	p := newTestPipeline(mem, &fakeStreamer{fallback: flightStreamBody}, &fakeRunner{}, &fakeSearcher{}, &fakeRanker{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := p.Run(ctx, flightTask(), nil)

	assert.True(t, result.Failed)
	assert.Empty(t, mem.recorded(memory.ActorSession{ActorID: FlightActorID, SessionID: "s1"}))
}

func TestPipelineActivityAggregatesPerCity(t *testing.T) {
	duration := 5
	searcher := &fakeSearcher{
		byCity: map[string]*warehouse.ResultSet{
			"Mumbai": {Columns: []string{"CITY", "NAME"}, Rows: [][]string{{"Mumbai", "Gateway of India"}}},
			"Pune":   {Columns: []string{"CITY", "NAME"}, Rows: [][]string{{"Pune", "Shaniwar Wada"}}},
		},
	}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{}, &fakeRunner{}, searcher, &fakeRanker{})

	task := Task{
		Domain:    DomainActivity,
		ActorID:   ActivityActorID,
		SessionID: "s1",
		Query:     "Plan a trip from Delhi to Mumbai and Pune",
		Intent: extract.TripIntent{
			SourceCity: "Delhi",
			DestCities: []string{"Mumbai", "Pune"},
			Duration:   &duration,
		},
	}
	result := p.Run(context.Background(), task, nil)

	assert.False(t, result.Failed)
	require.NotNil(t, result.Rows)
	assert.Len(t, result.Rows.Rows, 2)
	assert.Equal(t, "day-wise plan across Mumbai, Pune", result.Summary)
}

func TestPipelineActivitySearchFailureSkipsCity(t *testing.T) {
	searcher := &fakeSearcher{
		byCity: map[string]*warehouse.ResultSet{
			"Pune": {Columns: []string{"CITY", "NAME"}, Rows: [][]string{{"Pune", "Shaniwar Wada"}}},
		},
		errFor: "Mumbai",
	}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{}, &fakeRunner{}, searcher, &fakeRanker{})

	task := Task{
		Domain:    DomainActivity,
		ActorID:   ActivityActorID,
		SessionID: "s1",
		Query:     "Plan a trip",
		Intent:    extract.TripIntent{DestCities: []string{"Mumbai", "Pune"}},
	}
	result := p.Run(context.Background(), task, nil)

	assert.False(t, result.Failed)
	require.NotNil(t, result.Rows)
	assert.Len(t, result.Rows.Rows, 1)
}

func TestPipelineActivityNoHitsSkipsRank(t *testing.T) {
	ranker := &fakeRanker{}
	p := newTestPipeline(newFakeMemory(), &fakeStreamer{}, &fakeRunner{}, &fakeSearcher{}, ranker)

	task := Task{
		Domain:    DomainActivity,
		ActorID:   ActivityActorID,
		SessionID: "s1",
		Query:     "Plan a trip",
		Intent:    extract.TripIntent{DestCities: []string{"Nowhere"}},
	}
	result := p.Run(context.Background(), task, nil)

	assert.False(t, result.Failed)
	assert.Nil(t, result.Rows)
	assert.Empty(t, result.Summary)
	assert.Zero(t, ranker.calls)
}
