package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// LifecycleState is the coarse state of a soft-deletable record.
type LifecycleState string

const (
	LifecycleActive   LifecycleState = "ACTIVE"
	LifecycleInactive LifecycleState = "INACTIVE"
	LifecycleDeleted  LifecycleState = "DELETED"
)

// Lifecycle is Active, Inactive or Deleted{At}. DeletedAt is set only for Deleted.
type Lifecycle struct {
	State     LifecycleState `json:"state"`
	DeletedAt *time.Time     `json:"deleted_at,omitempty"`
}

func lifecycleOf(active bool, deletedAt gorm.DeletedAt) Lifecycle {
	if deletedAt.Valid {
		at := deletedAt.Time
		return Lifecycle{State: LifecycleDeleted, DeletedAt: &at}
	}
	if active {
		return Lifecycle{State: LifecycleActive}
	}
	return Lifecycle{State: LifecycleInactive}
}

func (c Category) MarshalJSON() ([]byte, error) {
	type category Category
	return json.Marshal(struct {
		category
		Lifecycle Lifecycle `json:"lifecycle"`
	}{category(c), c.Lifecycle()})
}

func (l SessionLocation) MarshalJSON() ([]byte, error) {
	type location SessionLocation
	return json.Marshal(struct {
		location
		Lifecycle Lifecycle `json:"lifecycle"`
	}{location(l), l.Lifecycle()})
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type booking Booking
	return json.Marshal(struct {
		booking
		Lifecycle Lifecycle `json:"lifecycle"`
	}{booking(b), b.Lifecycle()})
}

func (u User) MarshalJSON() ([]byte, error) {
	type user User
	return json.Marshal(struct {
		user
		Lifecycle Lifecycle `json:"lifecycle"`
	}{user(u), u.Lifecycle()})
}
