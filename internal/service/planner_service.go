package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-travelplanner-be/internal/dto"
	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/pkg/logger"
	"ai-travelplanner-be/internal/pkg/mailer"
	"ai-travelplanner-be/internal/repository/specification"
	"ai-travelplanner-be/internal/repository/unitofwork"
	"ai-travelplanner-be/pkg/agent"
	"ai-travelplanner-be/pkg/events"
	pktNats "ai-travelplanner-be/pkg/nats"

	"github.com/google/uuid"
)

type IPlannerService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetRun(ctx context.Context, id uuid.UUID) (*dto.PlanRunResponse, error)
	GetRunsBySession(ctx context.Context, sessionId string) ([]*dto.PlanRunResponse, error)
}

type plannerService struct {
	orchestrator     *agent.Orchestrator
	uowFactory       unitofwork.RepositoryFactory
	publisher        *pktNats.Publisher
	emailService     mailer.IEmailService
	logger           logger.ILogger
	concurrencyLimit int
}

func NewPlannerService(
	orchestrator *agent.Orchestrator,
	uowFactory unitofwork.RepositoryFactory,
	publisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
	concurrencyLimit int,
) IPlannerService {
	return &plannerService{
		orchestrator:     orchestrator,
		uowFactory:       uowFactory,
		publisher:        publisher,
		emailService:     emailService,
		logger:           log,
		concurrencyLimit: concurrencyLimit,
	}
}

func (s *plannerService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	s.logger.Info("PlannerService", "Starting plan run", map[string]interface{}{
		"session_id": req.SessionId,
		"query":      req.Query,
	})

	progress := func(task agent.Task, state agent.State) {
		s.publishTaskEvent(req.SessionId, task, state)
	}

	plan := s.orchestrator.Orchestrate(ctx, req.SessionId, req.Query, s.concurrencyLimit, progress)

	run := &entity.PlanRun{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Query:     req.Query,
		Intent:    toJSONMap(plan.Intent),
		Results:   resultsToJSONMap(plan.Results),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PlanRunRepository().Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save plan run: %w", err)
	}

	// The bus is optional; bootstrap continues without NATS.
	if s.publisher != nil {
		event := events.NewPlannerEvent(events.TypePlanDone, req.SessionId, map[string]interface{}{
			"run_id": run.Id.String(),
			"query":  req.Query,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("PlannerService", "Failed to publish plan done event", map[string]interface{}{"error": err.Error()})
		}
	}

	// Email delivery is best effort and never fails the run.
	if req.Email != "" {
		if err := s.emailService.SendItinerary(req.Email, req.Query, itinerarySections(plan.Results)); err != nil {
			s.logger.Warn("PlannerService", "Failed to send itinerary email", map[string]interface{}{
				"email": req.Email,
				"error": err.Error(),
			})
		}
	}

	return buildPlanResponse(run.Id, req, plan), nil
}

func (s *plannerService) GetRun(ctx context.Context, id uuid.UUID) (*dto.PlanRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	run, err := uow.PlanRunRepository().FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan run: %w", err)
	}
	if run == nil {
		return nil, nil
	}
	return toPlanRunResponse(run), nil
}

func (s *plannerService) GetRunsBySession(ctx context.Context, sessionId string) ([]*dto.PlanRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	runs, err := uow.PlanRunRepository().FindAll(ctx,
		specification.BySessionId{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan runs: %w", err)
	}

	res := make([]*dto.PlanRunResponse, 0, len(runs))
	for _, run := range runs {
		res = append(res, toPlanRunResponse(run))
	}
	return res, nil
}

// publishTaskEvent forwards one task state change to the bus. It runs
// inside the orchestrator's progress callback, which must not block, so
// the publish happens in the background; without a bus it is a no-op.
func (s *plannerService) publishTaskEvent(sessionId string, task agent.Task, state agent.State) {
	if s.publisher == nil {
		return
	}

	eventType := events.TypeTaskState
	switch state {
	case agent.StateLoadContext:
		eventType = events.TypeTaskStarted
	case agent.StateDone:
		eventType = events.TypeTaskDone
	case agent.StateFailed:
		eventType = events.TypeTaskFailed
	}

	event := events.NewPlannerEvent(eventType, sessionId, map[string]interface{}{
		"task":  task.Key(),
		"actor": task.ActorID,
		"state": state.String(),
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("PlannerService", "Failed to publish task event", map[string]interface{}{
				"task":  task.Key(),
				"error": err.Error(),
			})
		}
	}()
}

func buildPlanResponse(runId uuid.UUID, req *dto.CreatePlanRequest, plan *agent.PlanResult) *dto.PlanResponse {
	results := make(map[string]dto.TaskResultResponse, len(plan.Results))
	for key, r := range plan.Results {
		tr := dto.TaskResultResponse{
			Domain:         r.Domain,
			Scope:          r.ScopeKey,
			StreamedText:   r.StreamedText,
			Interpretation: r.Interpretation,
			SQL:            r.SQL,
			Summary:        r.Summary,
			Failed:         r.Failed,
			Error:          r.Error,
		}
		if r.Rows != nil {
			tr.Columns = r.Rows.Columns
			tr.Rows = r.Rows.Rows
		}
		results[key] = tr
	}

	return &dto.PlanResponse{
		RunId:     runId,
		SessionId: req.SessionId,
		Query:     req.Query,
		Intent: dto.TripIntentResponse{
			SourceCity: plan.Intent.SourceCity,
			DestCities: plan.Intent.DestCities,
			Duration:   plan.Intent.Duration,
		},
		Results: results,
	}
}

func toPlanRunResponse(run *entity.PlanRun) *dto.PlanRunResponse {
	return &dto.PlanRunResponse{
		Id:        run.Id,
		SessionId: run.SessionId,
		Query:     run.Query,
		Intent:    run.Intent,
		Results:   run.Results,
		CreatedAt: run.CreatedAt,
	}
}

// itinerarySections picks the human-readable text per planning domain for
// the email body.
func itinerarySections(results map[string]agent.Result) map[string]string {
	sections := make(map[string]string, len(results))
	for key, r := range results {
		if r.Failed {
			continue
		}
		text := r.Summary
		if text == "" {
			text = r.StreamedText
		}
		if text == "" {
			continue
		}
		sections[key] = text
	}
	return sections
}

func toJSONMap(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]interface{}{}
	}
	return m
}

func resultsToJSONMap(results map[string]agent.Result) map[string]interface{} {
	m := make(map[string]interface{}, len(results))
	for key, r := range results {
		m[key] = toJSONMap(r)
	}
	return m
}
