package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	ProviderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	CategoryID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	LocationID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"location_id"`
	TimeSlotID    *uuid.UUID     `gorm:"type:uuid;index" json:"time_slot_id"`
	Status        BookingStatus  `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	PaymentStatus PaymentStatus  `gorm:"size:20;not null;default:'PENDING';index" json:"payment_status"`
	PaymentMethod PaymentMethod  `gorm:"size:20;index" json:"payment_method"`
	PaymentDate   *time.Time     `json:"payment_date"`
	DateTime      time.Time      `gorm:"not null;index" json:"date_time"`
	Price         float64        `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Client   *User            `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Provider *User            `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Location *SessionLocation `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	TimeSlot *TimeSlot        `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
}

func (b *Booking) Lifecycle() Lifecycle {
	return lifecycleOf(b.Status != BookingStatusCancelled, b.DeletedAt)
}
