package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionLocation is a physical venue. Approval is independent of active/inactive.
type SessionLocation struct {
	ID             uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Address        string                 `gorm:"size:255;not null" json:"address"`
	City           string                 `gorm:"size:100;not null" json:"city"`
	State          string                 `gorm:"size:100;not null;index" json:"state"`
	ZipCode        string                 `gorm:"size:20;not null" json:"zip_code"`
	Country        string                 `gorm:"size:100;not null;index" json:"country"`
	Capacity       int                    `gorm:"not null" json:"capacity"`
	Status         LocationStatus         `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	ApprovalStatus LocationApprovalStatus `gorm:"size:20;not null;default:'PENDING';index" json:"approval_status"`
	ApprovedAt     *time.Time             `json:"approved_at"`
	ApprovedBy     *uuid.UUID             `gorm:"type:uuid" json:"approved_by"`
	CreatedAt      time.Time              `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	DeletedAt      gorm.DeletedAt         `gorm:"index" json:"-"`
}

func (l *SessionLocation) Lifecycle() Lifecycle {
	return lifecycleOf(l.Status == LocationStatusActive, l.DeletedAt)
}
