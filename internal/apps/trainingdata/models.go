package trainingdata

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingEntry is one logged activity owned by a user.
type TrainingEntry struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Activity          string         `gorm:"size:255;not null" json:"activity"`
	Date              time.Time      `gorm:"not null;index" json:"date"`
	DurationInMinutes int            `gorm:"not null" json:"duration_in_minutes"`
	Rating            int            `gorm:"not null" json:"rating"`
	Notes             string         `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

type EntryRequest struct {
	Activity          string `json:"activity" validate:"required,max=255"`
	Date              string `json:"date" validate:"required"`
	DurationInMinutes int    `json:"duration_in_minutes" validate:"gte=1,lte=1440"`
	Rating            int    `json:"rating" validate:"gte=1,lte=5"`
	Notes             string `json:"notes" validate:"max=5000"`
}
