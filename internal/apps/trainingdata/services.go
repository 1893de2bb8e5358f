package trainingdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entityName = "training_entry"

var ErrEntryNotFound = fmt.Errorf("training entry %w", services.ErrNotFound)

type EntryFilter struct {
	UserID uuid.UUID
	Search string
	From   time.Time
	Until  time.Time
}

func (f EntryFilter) Scopes() []query.Scope {
	return []query.Scope{
		query.Equal("user_id", f.UserID),
		query.Search(f.Search, "activity", "notes"),
		query.From("date", f.From),
		query.Until("date", f.Until),
	}
}

type EntryService struct {
	db *gorm.DB
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

// List pages entries matching f, newest activity first. Callers scope to
// an owner by setting f.UserID.
func (s *EntryService) List(ctx context.Context, f EntryFilter, opts query.Options) (*query.Result[TrainingEntry], error) {
	res, err := query.Paginate[TrainingEntry](ctx, s.db, query.Spec{
		Scopes: f.Scopes(),
		Order:  "date DESC, created_at DESC",
	}, opts)
	if err != nil {
		return nil, &services.StoreError{Op: "list training entries", Err: err}
	}
	return res, nil
}

func (s *EntryService) Create(ctx context.Context, userID uuid.UUID, req EntryRequest) (*TrainingEntry, error) {
	date, err := parseEntry(req)
	if err != nil {
		return nil, err
	}
	entry := TrainingEntry{
		UserID:            userID,
		Activity:          req.Activity,
		Date:              date,
		DurationInMinutes: req.DurationInMinutes,
		Rating:            req.Rating,
		Notes:             req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, &services.StoreError{Op: "create training entry", Err: err}
	}
	return &entry, nil
}

func (s *EntryService) Update(ctx context.Context, userID, id uuid.UUID, req EntryRequest) (*TrainingEntry, error) {
	date, err := parseEntry(req)
	if err != nil {
		return nil, err
	}

	var entry TrainingEntry
	db := s.db.WithContext(ctx)
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, &services.StoreError{Op: "update training entry", Err: err}
	}

	updates := map[string]interface{}{
		"activity":            req.Activity,
		"date":                date,
		"duration_in_minutes": req.DurationInMinutes,
		"rating":              req.Rating,
		"notes":               req.Notes,
	}
	if err := db.Model(&entry).Updates(updates).Error; err != nil {
		return nil, &services.StoreError{Op: "update training entry", Err: err}
	}
	entry.Activity = req.Activity
	entry.Date = date
	entry.DurationInMinutes = req.DurationInMinutes
	entry.Rating = req.Rating
	entry.Notes = req.Notes
	return &entry, nil
}

// Delete soft-deletes an entry owned by userID.
func (s *EntryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&TrainingEntry{})
	if res.Error != nil {
		return &services.StoreError{Op: "delete training entry", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func parseEntry(req EntryRequest) (time.Time, error) {
	if err := services.Validate(&req); err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.Date); err != nil {
			return time.Time{}, &services.ValidationError{Fields: map[string]string{"date": "must be a date (YYYY-MM-DD)"}}
		}
	}
	return date, nil
}
