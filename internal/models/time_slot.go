package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeSlot is a capacity-bounded unit that bookings attach to.
type TimeSlot struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProviderID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	StartTime       time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime         time.Time      `gorm:"not null" json:"end_time"`
	Capacity        int            `gorm:"not null;default:1" json:"capacity"`
	CurrentBookings int            `gorm:"not null;default:0;check:current_bookings >= 0" json:"current_bookings"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *TimeSlot) IsFull() bool { return t.CurrentBookings >= t.Capacity }
