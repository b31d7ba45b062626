package contract

import (
	"context"

	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanRunRepository interface {
	Create(ctx context.Context, run *entity.PlanRun) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.PlanRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanRun, error)
}
