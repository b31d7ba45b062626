package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PlanRun struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string         `gorm:"type:varchar(128);not null;index"`
	Query     string         `gorm:"type:text;not null"`
	Intent    datatypes.JSON `gorm:"type:jsonb"`
	Results   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (PlanRun) TableName() string {
	return "plan_runs"
}
