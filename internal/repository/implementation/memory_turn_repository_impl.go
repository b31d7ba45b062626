package implementation

import (
	"context"

	"ai-travelplanner-be/internal/model"
	"ai-travelplanner-be/internal/repository/contract"
	"ai-travelplanner-be/pkg/memory"

	"gorm.io/gorm"
)

type MemoryTurnRepositoryImpl struct {
	db *gorm.DB
}

func NewMemoryTurnRepository(db *gorm.DB) contract.MemoryTurnRepository {
	return &MemoryTurnRepositoryImpl{db: db}
}

func (r *MemoryTurnRepositoryImpl) Insert(ctx context.Context, as memory.ActorSession, role, text string) error {
	m := &model.MemoryTurn{
		ActorId:   as.ActorID,
		SessionId: as.SessionID,
		Role:      role,
		Text:      text,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MemoryTurnRepositoryImpl) RecentTurns(ctx context.Context, as memory.ActorSession, k int) ([]memory.Turn, error) {
	var models []*model.MemoryTurn
	err := r.db.WithContext(ctx).
		Where("actor_id = ? AND session_id = ?", as.ActorID, as.SessionID).
		Order("created_at DESC").
		Limit(k).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	// Reverse to oldest-first for transcript building
	turns := make([]memory.Turn, len(models))
	for i, m := range models {
		turns[len(models)-1-i] = memory.Turn{
			Role:      m.Role,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		}
	}
	return turns, nil
}
