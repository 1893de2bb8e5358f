package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseEnums(t *testing.T) {
	s, err := ParseBookingStatus("CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCancelled, s)

	m, err := ParsePaymentMethod("ADMIN_MANUAL")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodAdminManual, m)

	for _, bad := range []string{"", "cancelled", "LOST"} {
		_, err := ParseBookingStatus(bad)
		var eerr *InvalidEnumError
		require.ErrorAs(t, err, &eerr, bad)
		assert.Equal(t, "booking status", eerr.Kind)
	}
}

func TestEveryVocabularyRoundTrips(t *testing.T) {
	for _, v := range Roles {
		got, err := ParseRole(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, v := range LocationApprovalStatuses {
		got, err := ParseLocationApprovalStatus(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	assert.Len(t, PaymentStatuses, 5)
	assert.Len(t, UserStatuses, 3)
}

func TestLifecycle(t *testing.T) {
	deletedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	active := (&Category{Status: CategoryStatusActive}).Lifecycle()
	assert.Equal(t, LifecycleActive, active.State)
	assert.Nil(t, active.DeletedAt)

	inactive := (&SessionLocation{Status: LocationStatusInactive}).Lifecycle()
	assert.Equal(t, LifecycleInactive, inactive.State)

	deleted := (&Category{Status: CategoryStatusInactive, DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true}}).Lifecycle()
	assert.Equal(t, LifecycleDeleted, deleted.State)
	require.NotNil(t, deleted.DeletedAt)
	assert.Equal(t, deletedAt, *deleted.DeletedAt)

	assert.Equal(t, LifecycleInactive, (&Booking{Status: BookingStatusCancelled}).Lifecycle().State)
}

func TestLifecycleInJSON(t *testing.T) {
	deletedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	loc := SessionLocation{City: "Lyon", Status: LocationStatusActive, DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true}}

	raw, err := json.Marshal(loc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"DELETED","deleted_at":"2025-01-02T03:04:05Z"}`, rawField(t, raw, "lifecycle"))
	assert.Contains(t, string(raw), `"city":"Lyon"`)

	b := Booking{Status: BookingStatusCancelled, Client: &User{Email: "ada@example.com", Status: UserStatusApproved}}
	raw, err = json.Marshal(&b)
	require.NoError(t, err)
	var decoded struct {
		Status    string    `json:"status"`
		Lifecycle Lifecycle `json:"lifecycle"`
		Client    struct {
			Email     string    `json:"email"`
			Lifecycle Lifecycle `json:"lifecycle"`
		} `json:"client"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "CANCELLED", decoded.Status)
	assert.Equal(t, LifecycleInactive, decoded.Lifecycle.State)
	assert.Equal(t, "ada@example.com", decoded.Client.Email)
	assert.Equal(t, LifecycleActive, decoded.Client.Lifecycle.State)
}

func rawField(t *testing.T, raw []byte, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return string(m[key])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace", Name: "ada"}).DisplayName())
	assert.Equal(t, "ada", (&User{Name: "ada"}).DisplayName())
	assert.Equal(t, "ada@example.com", (&User{Email: "ada@example.com"}).DisplayName())
}

func TestTimeSlotIsFull(t *testing.T) {
	assert.True(t, (&TimeSlot{Capacity: 2, CurrentBookings: 2}).IsFull())
	assert.False(t, (&TimeSlot{Capacity: 2, CurrentBookings: 1}).IsFull())
}
