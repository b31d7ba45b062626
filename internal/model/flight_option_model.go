package model

import (
	"time"

	"github.com/google/uuid"
)

// FlightOption is a warehouse row the analyst's generated SQL runs over.
type FlightOption struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Airline       string    `gorm:"type:varchar(128);not null"`
	SourceCity    string    `gorm:"type:varchar(128);not null;index"`
	DestCity      string    `gorm:"type:varchar(128);not null;index"`
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         float64 `gorm:"not null"`
	Stops         int     `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (FlightOption) TableName() string {
	return "flight_options"
}
