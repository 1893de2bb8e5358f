package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is stored hashed. A token is single-use: Refresh revokes it
// before issuing the next pair.
type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	Revoked   bool       `gorm:"not null;default:false" json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *RefreshToken) Expired(now time.Time) bool { return now.After(t.ExpiresAt) }
