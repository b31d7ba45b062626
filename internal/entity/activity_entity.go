package entity

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	Id          uuid.UUID
	Name        string
	City        string
	Category    string
	Description string
	Rating      float64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// Document is the text representation fed to the embedder.
func (a *Activity) Document() string {
	return a.Name + ". " + a.Category + ". " + a.Description + " Located in " + a.City + "."
}
