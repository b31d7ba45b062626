package model

import (
	"time"

	"github.com/google/uuid"
)

type MemoryTurn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorId   string    `gorm:"type:varchar(128);not null;index:idx_memory_turns_actor_session"`
	SessionId string    `gorm:"type:varchar(128);not null;index:idx_memory_turns_actor_session"`
	Role      string    `gorm:"type:varchar(50);not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MemoryTurn) TableName() string {
	return "memory_turns"
}
