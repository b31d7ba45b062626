package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityEmbedding struct {
	Id         uuid.UUID
	Document   string
	Values     []float32
	ActivityId uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
