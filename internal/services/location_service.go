package services

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationFilter struct {
	Search         string
	Status         models.LocationStatus
	ApprovalStatus models.LocationApprovalStatus
	State          string
	Country        string
	MinCapacity    int
	MaxCapacity    int
}

func (f LocationFilter) Scopes() []query.Scope {
	return []query.Scope{
		query.Search(f.Search, "address", "city", "state", "zip_code", "country"),
		query.Equal("status", f.Status),
		query.Equal("approval_status", f.ApprovalStatus),
		query.ContainsFold("state", f.State),
		query.ContainsFold("country", f.Country),
		query.AtLeast("capacity", f.MinCapacity),
		query.AtMost("capacity", f.MaxCapacity),
	}
}

type LocationForm struct {
	Address        string                        `json:"address" validate:"required,max=255"`
	City           string                        `json:"city" validate:"required,max=100"`
	State          string                        `json:"state" validate:"required,max=100"`
	ZipCode        string                        `json:"zip_code" validate:"required,max=20"`
	Country        string                        `json:"country" validate:"required,max=100"`
	Capacity       int                           `json:"capacity" validate:"gte=1"`
	Status         models.LocationStatus         `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	ApprovalStatus models.LocationApprovalStatus `json:"approval_status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

func (f *LocationForm) columns() map[string]interface{} {
	return map[string]interface{}{
		"address":         f.Address,
		"city":            f.City,
		"state":           f.State,
		"zip_code":        f.ZipCode,
		"country":         f.Country,
		"capacity":        f.Capacity,
		"status":          f.Status,
		"approval_status": f.ApprovalStatus,
	}
}

func (f *LocationForm) apply(l *models.SessionLocation) {
	l.Address = f.Address
	l.City = f.City
	l.State = f.State
	l.ZipCode = f.ZipCode
	l.Country = f.Country
	l.Capacity = f.Capacity
	l.Status = f.Status
	l.ApprovalStatus = f.ApprovalStatus
}

var locationPaths = []string{"/admin/locations"}

type LocationService struct {
	db      *gorm.DB
	guard   *Guard
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewLocationService(db *gorm.DB, guard *Guard, m *metrics.Metrics) *LocationService {
	return &LocationService{db: db, guard: guard, metrics: m, now: time.Now}
}

func (s *LocationService) List(ctx context.Context, caller session.Caller, f LocationFilter, opts query.Options) (*query.Result[models.SessionLocation], error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if s.metrics != nil {
		s.metrics.ObserveList(EntityLocation)
	}
	res, err := query.Paginate[models.SessionLocation](ctx, s.db, query.Spec{Scopes: f.Scopes()}, opts)
	if err != nil {
		return nil, &StoreError{Op: "list locations", Err: err}
	}
	return res, nil
}

func (s *LocationService) Get(ctx context.Context, caller session.Caller, id uuid.UUID) (*models.SessionLocation, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	l, err := findLocation(s.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "get location", Err: err}
	}
	return l, nil
}

// Countries returns the distinct countries of live locations, sorted.
func (s *LocationService) Countries(ctx context.Context, caller session.Caller) ([]string, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	out := []string{}
	err := s.db.WithContext(ctx).Model(&models.SessionLocation{}).
		Distinct("country").Order("country ASC").Pluck("country", &out).Error
	if err != nil {
		return nil, &StoreError{Op: "list countries", Err: err}
	}
	return out, nil
}

// States returns the distinct states of live locations, optionally within one country.
func (s *LocationService) States(ctx context.Context, caller session.Caller, country string) ([]string, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	out := []string{}
	err := s.db.WithContext(ctx).Model(&models.SessionLocation{}).
		Scopes(query.Equal("country", country)).
		Distinct("state").Order("state ASC").Pluck("state", &out).Error
	if err != nil {
		return nil, &StoreError{Op: "list states", Err: err}
	}
	return out, nil
}

func (s *LocationService) Create(ctx context.Context, caller session.Caller, form LocationForm) (*models.SessionLocation, error) {
	var l models.SessionLocation
	err := s.guard.Run(ctx, caller, Mutation{Entity: EntityLocation, Action: "create", Paths: locationPaths}, func() error {
		if err := Validate(&form); err != nil {
			return err
		}
		form.apply(&l)
		if l.ApprovalStatus == models.LocationApprovalApproved {
			s.stampApproval(&l, caller.ID)
		}
		return s.db.WithContext(ctx).Create(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LocationService) Update(ctx context.Context, caller session.Caller, id uuid.UUID, form LocationForm) (*models.SessionLocation, error) {
	var out *models.SessionLocation
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityLocation, Action: "update", EntityID: id.String(), Paths: locationPaths,
	}, func() error {
		if err := Validate(&form); err != nil {
			return err
		}
		l, err := findLocation(s.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		updates := form.columns()
		form.apply(l)
		if form.ApprovalStatus == models.LocationApprovalApproved {
			s.stampApproval(l, caller.ID)
			updates["approved_at"] = *l.ApprovedAt
			updates["approved_by"] = *l.ApprovedBy
		}
		if err := s.db.WithContext(ctx).Model(l).Updates(updates).Error; err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LocationService) UpdateStatus(ctx context.Context, caller session.Caller, id uuid.UUID, status models.LocationStatus) (*models.SessionLocation, error) {
	var out *models.SessionLocation
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityLocation, Action: "update_status", EntityID: id.String(), Paths: locationPaths,
	}, func() error {
		l, err := findLocation(s.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Model(l).Update("status", status).Error; err != nil {
			return err
		}
		l.Status = status
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateApprovalStatus sets approval_status. Approving stamps approved_at and
// approved_by with the caller; any other status leaves both untouched.
func (s *LocationService) UpdateApprovalStatus(ctx context.Context, caller session.Caller, id uuid.UUID, status models.LocationApprovalStatus) (*models.SessionLocation, error) {
	var out *models.SessionLocation
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityLocation, Action: "update_approval_status", EntityID: id.String(), Paths: locationPaths,
	}, func() error {
		l, err := findLocation(s.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{"approval_status": status}
		if status == models.LocationApprovalApproved {
			s.stampApproval(l, caller.ID)
			updates["approved_at"] = *l.ApprovedAt
			updates["approved_by"] = *l.ApprovedBy
		}
		if err := s.db.WithContext(ctx).Model(l).Updates(updates).Error; err != nil {
			return err
		}
		l.ApprovalStatus = status
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LocationService) Delete(ctx context.Context, caller session.Caller, id uuid.UUID) error {
	return s.guard.Run(ctx, caller, Mutation{
		Entity: EntityLocation, Action: "delete", EntityID: id.String(), Paths: locationPaths,
	}, func() error {
		return softDelete(s.db.WithContext(ctx), &models.SessionLocation{}, id, "INACTIVE", s.now(), ErrLocationNotFound)
	})
}

func (s *LocationService) stampApproval(l *models.SessionLocation, by uuid.UUID) {
	now := s.now()
	l.ApprovedAt = &now
	l.ApprovedBy = &by
}

func findLocation(db *gorm.DB, id uuid.UUID) (*models.SessionLocation, error) {
	var l models.SessionLocation
	if err := db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}
