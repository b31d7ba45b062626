package entity

import (
	"time"

	"github.com/google/uuid"
)

type PlanRun struct {
	Id        uuid.UUID
	SessionId string
	Query     string
	Intent    map[string]interface{}
	Results   map[string]interface{}
	CreatedAt time.Time
}
