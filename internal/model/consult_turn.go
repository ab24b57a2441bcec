package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsultTurn is the persisted audit record of one completed counseling turn.
type ConsultTurn struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId string    `gorm:"index"`
	Gene      string
	Category  string
	Trust     float64
	Certainty float64
	Sources   string // comma-joined display names
	CreatedAt time.Time
}
