package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on first Google sign-in and approved after profile completion.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email         string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name          string         `gorm:"size:255" json:"name"`
	FirstName     string         `gorm:"size:100" json:"first_name"`
	LastName      string         `gorm:"size:100" json:"last_name"`
	Image         string         `gorm:"size:500" json:"image,omitempty"`
	Role          Role           `gorm:"size:20;not null;default:'CLIENT';index" json:"role"`
	Status        UserStatus     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	GoogleSubject *string        `gorm:"size:255;uniqueIndex" json:"-"`
	LastLogin     *time.Time     `json:"last_login"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DisplayName prefers the completed profile over the OAuth display name.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u *User) Lifecycle() Lifecycle {
	return lifecycleOf(u.Status != UserStatusRejected, u.DeletedAt)
}
