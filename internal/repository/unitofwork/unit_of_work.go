package unitofwork

import (
	"context"

	"ai-travelplanner-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ActivityRepository() contract.ActivityRepository
	ActivityEmbeddingRepository() contract.ActivityEmbeddingRepository
	MemoryTurnRepository() contract.MemoryTurnRepository
	PlanRunRepository() contract.PlanRunRepository
}
