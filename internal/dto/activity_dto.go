package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateActivityRequest struct {
	Name        string  `json:"name" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
}

type ActivityResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublishEmbedActivityMessage is the embed-pipeline payload.
type PublishEmbedActivityMessage struct {
	ActivityId uuid.UUID `json:"activity_id"`
}
