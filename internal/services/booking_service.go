package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter narrows the admin booking list. Zero fields are ignored.
type BookingFilter struct {
	Search        string
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
	PaymentMethod models.PaymentMethod
	CategoryID    uuid.UUID
	LocationID    uuid.UUID
	ClientID      uuid.UUID
	ProviderID    uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
}

func (f BookingFilter) Scopes() []query.Scope {
	return []query.Scope{
		bookingSearch(f.Search),
		query.Equal("bookings.status", f.Status),
		query.Equal("bookings.payment_status", f.PaymentStatus),
		query.Equal("bookings.payment_method", f.PaymentMethod),
		query.Equal("bookings.category_id", f.CategoryID),
		query.Equal("bookings.location_id", f.LocationID),
		query.Equal("bookings.client_id", f.ClientID),
		query.Equal("bookings.provider_id", f.ProviderID),
		query.From("bookings.date_time", f.StartDate),
		query.Until("bookings.date_time", f.EndDate),
	}
}

const bookingUserMatch = "SELECT id FROM users WHERE deleted_at IS NULL" +
	" AND (first_name ILIKE @p OR last_name ILIKE @p OR email ILIKE @p OR name ILIKE @p)"

// bookingSearch matches the booking id and the names of the people, category
// and venue it references. Soft-deleted references never match.
func bookingSearch(term string) query.Scope {
	return func(db *gorm.DB) *gorm.DB {
		pattern, ok := query.Pattern(term)
		if !ok {
			return db
		}
		return db.Where("(CAST(bookings.id AS TEXT) ILIKE @p"+
			" OR bookings.client_id IN ("+bookingUserMatch+")"+
			" OR bookings.provider_id IN ("+bookingUserMatch+")"+
			" OR bookings.category_id IN (SELECT id FROM categories WHERE deleted_at IS NULL AND name ILIKE @p)"+
			" OR bookings.location_id IN (SELECT id FROM session_locations WHERE deleted_at IS NULL AND (address ILIKE @p OR city ILIKE @p)))",
			sql.Named("p", pattern))
	}
}

var bookingPreloads = []string{"Client", "Provider", "Category", "Location"}

func bookingPaths(id uuid.UUID) []string {
	return []string{"/bookings", "/bookings/" + id.String(), "/admin/bookings"}
}

type BookingStats struct {
	TotalBookings int64                          `json:"totalBookings"`
	StatusCounts  map[models.BookingStatus]int64 `json:"statusCounts"`
	PaymentCounts map[models.PaymentStatus]int64 `json:"paymentCounts"`
}

type BookingService struct {
	db      *gorm.DB
	guard   *Guard
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewBookingService(db *gorm.DB, guard *Guard, m *metrics.Metrics) *BookingService {
	return &BookingService{db: db, guard: guard, metrics: m, now: time.Now}
}

func (s *BookingService) List(ctx context.Context, caller session.Caller, f BookingFilter, opts query.Options) (*query.Result[models.Booking], error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if s.metrics != nil {
		s.metrics.ObserveList(EntityBooking)
	}
	res, err := query.Paginate[models.Booking](ctx, s.db, query.Spec{
		Scopes:   f.Scopes(),
		Order:    "bookings.created_at DESC",
		Preloads: bookingPreloads,
	}, opts)
	if err != nil {
		return nil, &StoreError{Op: "list bookings", Err: err}
	}
	return res, nil
}

func (s *BookingService) Get(ctx context.Context, caller session.Caller, id uuid.UUID) (*models.Booking, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	q := s.db.WithContext(ctx)
	for _, p := range append(bookingPreloads, "TimeSlot") {
		q = q.Preload(p)
	}
	var b models.Booking
	if err := q.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, &StoreError{Op: "get booking", Err: err}
	}
	return &b, nil
}

// Stats counts live bookings by status and by payment status. Every known
// status is present in the result, zero when unused.
func (s *BookingService) Stats(ctx context.Context, caller session.Caller) (*BookingStats, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	stats := &BookingStats{
		StatusCounts:  make(map[models.BookingStatus]int64, len(models.BookingStatuses)),
		PaymentCounts: make(map[models.PaymentStatus]int64, len(models.PaymentStatuses)),
	}
	for _, st := range models.BookingStatuses {
		stats.StatusCounts[st] = 0
	}
	for _, st := range models.PaymentStatuses {
		stats.PaymentCounts[st] = 0
	}

	type row struct {
		Value string
		Count int64
	}
	var byStatus, byPayment []row
	db := s.db.WithContext(ctx).Model(&models.Booking{})
	if err := db.Session(&gorm.Session{}).Select("status AS value, count(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, &StoreError{Op: "count bookings", Err: err}
	}
	if err := db.Session(&gorm.Session{}).Select("payment_status AS value, count(*) AS count").Group("payment_status").Scan(&byPayment).Error; err != nil {
		return nil, &StoreError{Op: "count bookings", Err: err}
	}

	for _, r := range byStatus {
		stats.StatusCounts[models.BookingStatus(r.Value)] = r.Count
		stats.TotalBookings += r.Count
	}
	for _, r := range byPayment {
		stats.PaymentCounts[models.PaymentStatus(r.Value)] = r.Count
	}
	return stats, nil
}

// UpdateStatus sets a booking's status. Moving into CANCELLED releases one
// seat on the linked time slot and moving out of it takes the seat back, so a
// booking holds at most one seat whatever the sequence of changes. The row
// lock makes a repeated change a no-op.
func (s *BookingService) UpdateStatus(ctx context.Context, caller session.Caller, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	var out models.Booking
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityBooking, Action: "update_status", EntityID: id.String(), Paths: bookingPaths(id),
	}, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			b, err := lockBooking(tx, id)
			if err != nil {
				return err
			}
			if b.Status == status {
				out = *b
				return nil
			}
			if b.TimeSlotID != nil {
				switch {
				case status == models.BookingStatusCancelled:
					err = releaseSeat(tx, *b.TimeSlotID)
				case b.Status == models.BookingStatusCancelled:
					err = retakeSeat(tx, *b.TimeSlotID)
				}
				if err != nil {
					return err
				}
			}
			if err := tx.Model(b).Update("status", status).Error; err != nil {
				return err
			}
			b.Status = status
			out = *b
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePaymentStatus sets payment_status and stamps payment_date when it
// becomes PAID.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, caller session.Caller, id uuid.UUID, status models.PaymentStatus) (*models.Booking, error) {
	var out models.Booking
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityBooking, Action: "update_payment_status", EntityID: id.String(), Paths: bookingPaths(id),
	}, func() error {
		var b models.Booking
		if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		updates := map[string]interface{}{"payment_status": status}
		if status == models.PaymentStatusPaid {
			now := s.now()
			updates["payment_date"] = now
			b.PaymentDate = &now
		}
		if err := s.db.WithContext(ctx).Model(&b).Updates(updates).Error; err != nil {
			return err
		}
		b.PaymentStatus = status
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ManualPayment marks the given bookings PAID by ADMIN_MANUAL. Bookings whose
// payment is no longer PENDING are skipped. Returns the number updated.
func (s *BookingService) ManualPayment(ctx context.Context, caller session.Caller, ids []uuid.UUID) (int64, error) {
	var updated int64
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityBooking, Action: "manual_payment", Op: "record manual payment",
		Paths: []string{"/bookings", "/admin/bookings", "/manual-payment", "/dashboard"},
	}, func() error {
		if len(ids) == 0 {
			return invalidField("booking_ids", "is required")
		}
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Booking{}).
				Where("id IN ? AND payment_status = ?", ids, models.PaymentStatusPending).
				Updates(map[string]interface{}{
					"payment_status": models.PaymentStatusPaid,
					"payment_method": models.PaymentMethodAdminManual,
					"payment_date":   s.now(),
				})
			if res.Error != nil {
				return res.Error
			}
			updated = res.RowsAffected
			return nil
		})
	})
	return updated, err
}

func lockBooking(tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// releaseSeat decrements current_bookings, never below zero.
func releaseSeat(tx *gorm.DB, slotID uuid.UUID) error {
	return tx.Model(&models.TimeSlot{}).
		Where("id = ? AND current_bookings > 0", slotID).
		UpdateColumn("current_bookings", gorm.Expr("current_bookings - ?", 1)).Error
}

// retakeSeat claims a seat for a booking leaving CANCELLED. A full slot
// refuses the change. A slot that no longer exists has no seat to claim.
func retakeSeat(tx *gorm.DB, slotID uuid.UUID) error {
	var slot models.TimeSlot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if slot.IsFull() {
		return invalidField("status", "time slot is full")
	}
	return tx.Model(&models.TimeSlot{}).
		Where("id = ?", slotID).
		UpdateColumn("current_bookings", gorm.Expr("current_bookings + ?", 1)).Error
}
