package specification

import "gorm.io/gorm"

// ByCity filters activities by destination city, case-insensitive.
type ByCity struct {
	City string
}

func (s ByCity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(city) = LOWER(?)", s.City)
}

// BySessionId filters rows belonging to one planning session.
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}
