package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a bookable service type with duration and capacity bounds.
type Category struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                 string         `gorm:"size:255;not null" json:"name"`
	Description          string         `gorm:"type:text" json:"description"`
	MinDurationInMinutes int            `gorm:"not null" json:"min_duration_in_minutes"`
	MaxDurationInMinutes int            `gorm:"not null" json:"max_duration_in_minutes"`
	MinClients           int            `gorm:"not null" json:"min_clients"`
	MaxClients           int            `gorm:"not null" json:"max_clients"`
	Status               CategoryStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) Lifecycle() Lifecycle {
	return lifecycleOf(c.Status == CategoryStatusActive, c.DeletedAt)
}
