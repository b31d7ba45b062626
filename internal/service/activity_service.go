package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-travelplanner-be/internal/dto"
	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/repository/specification"
	"ai-travelplanner-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IActivityService interface {
	CreateActivity(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	GetActivitiesByCity(ctx context.Context, city string) ([]*dto.ActivityResponse, error)
}

type activityService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IActivityService {
	return &activityService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *activityService) CreateActivity(ctx context.Context, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	activity := &entity.Activity{
		Id:          uuid.New(),
		Name:        req.Name,
		City:        req.City,
		Category:    req.Category,
		Description: req.Description,
		Rating:      req.Rating,
		CreatedAt:   time.Now(),
	}

	if err := uow.ActivityRepository().Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	// Queue the embedding job. The consumer picks it up asynchronously.
	msg := dto.PublishEmbedActivityMessage{ActivityId: activity.Id}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed message: %w", err)
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("failed to publish embed message: %w", err)
	}

	return toActivityResponse(activity), nil
}

func (s *activityService) GetActivitiesByCity(ctx context.Context, city string) ([]*dto.ActivityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	activities, err := uow.ActivityRepository().FindAll(ctx,
		specification.ByCity{City: city},
		specification.OrderBy{Field: "rating", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	res := make([]*dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		res = append(res, toActivityResponse(activity))
	}
	return res, nil
}

func toActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		Id:          a.Id,
		Name:        a.Name,
		City:        a.City,
		Category:    a.Category,
		Description: a.Description,
		Rating:      a.Rating,
		CreatedAt:   a.CreatedAt,
	}
}
