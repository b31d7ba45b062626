package model

import (
	"time"

	"github.com/google/uuid"
)

// HotelOption is a warehouse row the analyst's generated SQL runs over.
type HotelOption struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	City          string    `gorm:"type:varchar(128);not null;index"`
	Rating        float64   `gorm:"default:0"`
	PricePerNight float64   `gorm:"not null"`
	Amenities     string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (HotelOption) TableName() string {
	return "hotel_options"
}
