package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePlanRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionId string `json:"session_id" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type TripIntentResponse struct {
	SourceCity string   `json:"source_city"`
	DestCities []string `json:"dest_cities"`
	Duration   *int     `json:"duration"`
}

type TaskResultResponse struct {
	Domain         string     `json:"domain"`
	Scope          string     `json:"scope,omitempty"`
	StreamedText   string     `json:"streamed_text,omitempty"`
	Interpretation string     `json:"interpretation,omitempty"`
	SQL            string     `json:"sql,omitempty"`
	Columns        []string   `json:"columns,omitempty"`
	Rows           [][]string `json:"rows,omitempty"`
	Summary        string     `json:"summary,omitempty"`
	Failed         bool       `json:"failed"`
	Error          string     `json:"error,omitempty"`
}

type PlanResponse struct {
	RunId     uuid.UUID                     `json:"run_id"`
	SessionId string                        `json:"session_id"`
	Query     string                        `json:"query"`
	Intent    TripIntentResponse            `json:"intent"`
	Results   map[string]TaskResultResponse `json:"results"`
}

type PlanRunResponse struct {
	Id        uuid.UUID              `json:"id"`
	SessionId string                 `json:"session_id"`
	Query     string                 `json:"query"`
	Intent    map[string]interface{} `json:"intent"`
	Results   map[string]interface{} `json:"results"`
	CreatedAt time.Time              `json:"created_at"`
}
