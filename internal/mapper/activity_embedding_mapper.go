package mapper

import (
	"time"

	"ai-travelplanner-be/internal/entity"
	"ai-travelplanner-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ActivityEmbeddingMapper struct{}

func NewActivityEmbeddingMapper() *ActivityEmbeddingMapper {
	return &ActivityEmbeddingMapper{}
}

func (m *ActivityEmbeddingMapper) ToEntity(e *model.ActivityEmbedding) *entity.ActivityEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ActivityEmbedding{
		Id:         e.Id,
		Document:   e.Document,
		Values:     e.EmbeddingValue.Slice(),
		ActivityId: e.ActivityId,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  e.DeletedAt.Valid,
	}
}

func (m *ActivityEmbeddingMapper) ToModel(e *entity.ActivityEmbedding) *model.ActivityEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ActivityEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.Values),
		ActivityId:     e.ActivityId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}
