package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/model"
	"ai-travelplanner-be/internal/repository/contract"
	"ai-travelplanner-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlanRunRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRunRepository(db *gorm.DB) contract.PlanRunRepository {
	return &PlanRunRepositoryImpl{db: db}
}

func (r *PlanRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanRunRepositoryImpl) Create(ctx context.Context, run *entity.PlanRun) error {
	m, err := r.toModel(run)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	run.Id = m.Id
	run.CreatedAt = m.CreatedAt
	return nil
}

func (r *PlanRunRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.PlanRun, error) {
	var m model.PlanRun
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *PlanRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanRun, error) {
	var models []*model.PlanRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	runs := make([]*entity.PlanRun, 0, len(models))
	for _, m := range models {
		run, err := r.toEntity(m)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *PlanRunRepositoryImpl) toModel(run *entity.PlanRun) (*model.PlanRun, error) {
	intent, err := json.Marshal(run.Intent)
	if err != nil {
		return nil, err
	}
	results, err := json.Marshal(run.Results)
	if err != nil {
		return nil, err
	}
	return &model.PlanRun{
		Id:        run.Id,
		SessionId: run.SessionId,
		Query:     run.Query,
		Intent:    datatypes.JSON(intent),
		Results:   datatypes.JSON(results),
		CreatedAt: run.CreatedAt,
	}, nil
}

func (r *PlanRunRepositoryImpl) toEntity(m *model.PlanRun) (*entity.PlanRun, error) {
	run := &entity.PlanRun{
		Id:        m.Id,
		SessionId: m.SessionId,
		Query:     m.Query,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Intent) > 0 {
		if err := json.Unmarshal(m.Intent, &run.Intent); err != nil {
			return nil, err
		}
	}
	if len(m.Results) > 0 {
		if err := json.Unmarshal(m.Results, &run.Results); err != nil {
			return nil, err
		}
	}
	return run, nil
}
