package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-travelplanner-be/pkg/analyst"
	"ai-travelplanner-be/pkg/memory"
	"ai-travelplanner-be/pkg/warehouse"
)

// EventStream is the pull side of an analyst response.
type EventStream interface {
	Next() (analyst.Event, bool)
}

// QueryStreamer opens an analyst stream for a natural-language query.
type QueryStreamer interface {
	StreamQuery(ctx context.Context, query string) (EventStream, error)
}

// SQLRunner executes generated SQL against the warehouse.
type SQLRunner interface {
	Run(ctx context.Context, query string) (*warehouse.ResultSet, error)
}

// ActivitySearcher finds activities for one destination city.
type ActivitySearcher interface {
	Search(ctx context.Context, city string, duration *int, limit int) (*warehouse.ResultSet, error)
}

// OptionRanker summarizes tabular results in natural language.
type OptionRanker interface {
	BestOptions(ctx context.Context, domain, query string, rs *warehouse.ResultSet) (string, error)
	DaywisePlan(ctx context.Context, query, sourceCity string, destCities []string, rs *warehouse.ResultSet) (string, error)
}

// MemoryStore is the conversational memory boundary.
type MemoryStore interface {
	Append(ctx context.Context, as memory.ActorSession, role, text string) error
	LastK(ctx context.Context, as memory.ActorSession, k int) []memory.Turn
}

// Pipeline runs one task through its phases. Every phase past the opening
// of the analyst stream degrades on failure instead of failing the task:
// a lost phase nulls its own fields and the remaining phases that depend
// on them, nothing more.
type Pipeline struct {
	memory      MemoryStore
	streamer    QueryStreamer
	runner      SQLRunner
	searcher    ActivitySearcher
	ranker      OptionRanker
	contextK    int
	searchLimit int
	stepTimeout time.Duration
	logger      *log.Logger
}

func NewPipeline(
	mem MemoryStore,
	streamer QueryStreamer,
	runner SQLRunner,
	searcher ActivitySearcher,
	ranker OptionRanker,
	contextK int,
	searchLimit int,
	stepTimeout time.Duration,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		memory:      mem,
		streamer:    streamer,
		runner:      runner,
		searcher:    searcher,
		ranker:      ranker,
		contextK:    contextK,
		searchLimit: searchLimit,
		stepTimeout: stepTimeout,
		logger:      logger,
	}
}

// Run executes the task and always returns exactly one result. It never
// returns an error and never panics across the task boundary.
func (p *Pipeline) Run(ctx context.Context, task Task, progress ProgressFunc) Result {
	result := Result{
		Domain:   task.Domain,
		ScopeKey: task.ScopeKey,
		ActorID:  task.ActorID,
	}
	report := func(state State) {
		if progress != nil {
			progress(task, state)
		}
	}

	if err := ctx.Err(); err != nil {
		return p.fail(task, result, report, newAgentError(KindTransport, "task cancelled before start", err))
	}

	as := memory.ActorSession{ActorID: task.ActorID, SessionID: task.SessionID}

	report(StateLoadContext)
	transcript := memory.FormatTranscript(p.memory.LastK(ctx, as, p.contextK))
	p.appendTurn(ctx, as, "user", task.Query)

	if task.Domain == DomainActivity {
		return p.runActivity(ctx, task, as, result, report)
	}

	report(StateStreamQuery)
	streamCtx, cancel := p.stepContext(ctx)
	stream, err := p.streamer.StreamQuery(streamCtx, primeQuery(transcript, task.Query))
	if err != nil {
		cancel()
		return p.fail(task, result, report, newAgentError(KindTransport, "analyst unreachable", err))
	}

	streamErr := p.drainStream(stream, &result)
	cancel()
	if streamErr != nil {
		// Service-reported failure mid-stream keeps the partial text and
		// stops the task without the failure shape.
		p.logger.Printf("[STREAM] %s: %v", task.Key(), streamErr)
		result.Error = streamErr.Error()
		p.finish(ctx, task, as, &result, report)
		return result
	}

	if result.SQL == "" {
		p.logger.Printf("[STREAM] %s: no SQL generated, skipping query", task.Key())
		p.finish(ctx, task, as, &result, report)
		return result
	}

	report(StateRunQuery)
	queryCtx, cancel := p.stepContext(ctx)
	rows, err := p.runner.Run(queryCtx, result.SQL)
	cancel()
	if err != nil {
		p.logger.Printf("[QUERY] %s: %v", task.Key(),
			newAgentError(KindQueryExecution, "generated SQL failed", err))
	} else {
		result.Rows = rows
	}

	if !result.Rows.Empty() {
		report(StateRank)
		rankCtx, cancel := p.stepContext(ctx)
		summary, err := p.ranker.BestOptions(rankCtx, task.Domain, task.Query, result.Rows)
		cancel()
		if err != nil {
			p.logger.Printf("[RANK] %s: %v", task.Key(), err)
		} else {
			result.Summary = summary
		}
	}

	p.finish(ctx, task, as, &result, report)
	return result
}

// runActivity is the search-backed branch: one vector search per
// destination city aggregated into a single table, then a day-wise plan.
func (p *Pipeline) runActivity(ctx context.Context, task Task, as memory.ActorSession, result Result, report func(State)) Result {
	report(StateExtractIntent)
	cities := task.Intent.DestCities

	report(StateRunQuery)
	agg := &warehouse.ResultSet{}
	for _, city := range cities {
		searchCtx, cancel := p.stepContext(ctx)
		rs, err := p.searcher.Search(searchCtx, city, task.Intent.Duration, p.searchLimit)
		cancel()
		if err != nil {
			p.logger.Printf("[SEARCH] %s city=%s: %v", task.Key(), city,
				newAgentError(KindQueryExecution, "activity search failed", err))
			continue
		}
		agg.Merge(rs)
	}
	if !agg.Empty() {
		result.Rows = agg
	}

	if !result.Rows.Empty() {
		report(StateRank)
		rankCtx, cancel := p.stepContext(ctx)
		plan, err := p.ranker.DaywisePlan(rankCtx, task.Query, task.Intent.SourceCity, cities, result.Rows)
		cancel()
		if err != nil {
			p.logger.Printf("[RANK] %s: %v", task.Key(), err)
		} else {
			result.Summary = plan
		}
	}

	p.finish(ctx, task, as, &result, report)
	return result
}

// drainStream consumes the analyst stream to exhaustion, accumulating text
// and the first tool result. A service error event terminates the drain.
func (p *Pipeline) drainStream(stream EventStream, result *Result) *AgentError {
	for {
		ev, ok := stream.Next()
		if !ok {
			return nil
		}
		switch e := ev.(type) {
		case analyst.TextDelta:
			result.StreamedText += e.Text
		case analyst.ToolResultDelta:
			if result.SQL == "" {
				result.SQL = e.SQL
				result.Interpretation = e.Interpretation
			}
		case analyst.ErrorEvent:
			return newAgentError(KindProtocol, "analyst stream error", fmt.Errorf("%s", e.Message))
		}
	}
}

func (p *Pipeline) finish(ctx context.Context, task Task, as memory.ActorSession, result *Result, report func(State)) {
	if ctx.Err() == nil {
		if reply := result.Reply(); reply != "" {
			p.appendTurn(ctx, as, "assistant", reply)
		}
	}
	report(StateDone)
	p.logger.Printf("[DONE] %s sql=%t rows=%t summary=%t", task.Key(),
		result.SQL != "", !result.Rows.Empty(), result.Summary != "")
}

func (p *Pipeline) fail(task Task, result Result, report func(State), agentErr *AgentError) Result {
	result.Failed = true
	result.Error = agentErr.Error()
	report(StateFailed)
	p.logger.Printf("[FAILED] %s: %v", task.Key(), agentErr)
	return result
}

// appendTurn is best effort. An unavailable store is logged and swallowed
// so memory never decides a task's fate.
func (p *Pipeline) appendTurn(ctx context.Context, as memory.ActorSession, role, text string) {
	if err := p.memory.Append(ctx, as, role, text); err != nil {
		p.logger.Printf("[MEMORY] append %s turn failed for actor=%s: %v", role, as.ActorID,
			newAgentError(KindStoreUnavailable, "turn not recorded", err))
	}
}

func (p *Pipeline) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.stepTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.stepTimeout)
}

// Reply picks the text worth remembering: the ranked summary when ranking
// succeeded, the streamed narrative otherwise.
func (r *Result) Reply() string {
	if r.Summary != "" {
		return r.Summary
	}
	return r.StreamedText
}

func primeQuery(transcript, query string) string {
	if transcript == "" {
		return query
	}
	return "Previous conversation:\n" + transcript + "\nCurrent request: " + query
}
