package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/revalidate"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	adminCaller  = session.Caller{ID: uuid.New(), Role: models.RoleAdmin, Status: models.UserStatusApproved}
	clientCaller = session.Caller{ID: uuid.New(), Role: models.RoleClient, Status: models.UserStatusApproved}
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func newTestGuard() (*Guard, *revalidate.Recorder, *metrics.Metrics) {
	rec := &revalidate.Recorder{}
	m := metrics.New()
	return NewGuard(rec, m), rec, m
}

var bookingColumns = []string{
	"id", "client_id", "provider_id", "category_id", "location_id", "time_slot_id",
	"status", "payment_status", "payment_method", "date_time", "price", "created_at", "updated_at",
}

func bookingRow(rows *sqlmock.Rows, id uuid.UUID, status models.BookingStatus, slotID *uuid.UUID) *sqlmock.Rows {
	var slot interface{}
	if slotID != nil {
		slot = slotID.String()
	}
	return rows.AddRow(id.String(), uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString(), slot,
		string(status), string(models.PaymentStatusPending), string(models.PaymentMethodCreditCard),
		fixedNow, 45.0, fixedNow, fixedNow)
}
