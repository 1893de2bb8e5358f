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

// CategoryFilter narrows the admin category list. A zero bound is unbounded.
type CategoryFilter struct {
	Search      string
	Status      models.CategoryStatus
	MinDuration int
	MaxDuration int
	MinCapacity int
	MaxCapacity int
}

func (f CategoryFilter) Scopes() []query.Scope {
	return []query.Scope{
		query.Search(f.Search, "name", "description"),
		query.Equal("status", f.Status),
		query.AtLeast("min_duration_in_minutes", f.MinDuration),
		query.AtMost("max_duration_in_minutes", f.MaxDuration),
		query.AtLeast("min_clients", f.MinCapacity),
		query.AtMost("max_clients", f.MaxCapacity),
	}
}

type CategoryForm struct {
	Name                 string                `json:"name" validate:"required,min=2,max=255"`
	Description          string                `json:"description" validate:"max=2000"`
	MinDurationInMinutes int                   `json:"min_duration_in_minutes" validate:"gte=1"`
	MaxDurationInMinutes int                   `json:"max_duration_in_minutes" validate:"gte=1,gtefield=MinDurationInMinutes"`
	MinClients           int                   `json:"min_clients" validate:"gte=1"`
	MaxClients           int                   `json:"max_clients" validate:"gte=1,gtefield=MinClients"`
	Status               models.CategoryStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

func (f *CategoryForm) columns() map[string]interface{} {
	return map[string]interface{}{
		"name":                    f.Name,
		"description":             f.Description,
		"min_duration_in_minutes": f.MinDurationInMinutes,
		"max_duration_in_minutes": f.MaxDurationInMinutes,
		"min_clients":             f.MinClients,
		"max_clients":             f.MaxClients,
		"status":                  f.Status,
	}
}

func (f *CategoryForm) apply(c *models.Category) {
	c.Name = f.Name
	c.Description = f.Description
	c.MinDurationInMinutes = f.MinDurationInMinutes
	c.MaxDurationInMinutes = f.MaxDurationInMinutes
	c.MinClients = f.MinClients
	c.MaxClients = f.MaxClients
	c.Status = f.Status
}

var categoryPaths = []string{"/admin/categories", "/categories"}

type CategoryService struct {
	db      *gorm.DB
	guard   *Guard
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCategoryService(db *gorm.DB, guard *Guard, m *metrics.Metrics) *CategoryService {
	return &CategoryService{db: db, guard: guard, metrics: m, now: time.Now}
}

func (s *CategoryService) List(ctx context.Context, caller session.Caller, f CategoryFilter, opts query.Options) (*query.Result[models.Category], error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if s.metrics != nil {
		s.metrics.ObserveList(EntityCategory)
	}
	res, err := query.Paginate[models.Category](ctx, s.db, query.Spec{Scopes: f.Scopes()}, opts)
	if err != nil {
		return nil, &StoreError{Op: "list categories", Err: err}
	}
	return res, nil
}

func (s *CategoryService) Get(ctx context.Context, caller session.Caller, id uuid.UUID) (*models.Category, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	c, err := findCategory(s.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "get category", Err: err}
	}
	return c, nil
}

// Statuses lists the category status vocabulary for filter dropdowns.
func (s *CategoryService) Statuses() []models.CategoryStatus {
	return models.CategoryStatuses
}

func (s *CategoryService) Create(ctx context.Context, caller session.Caller, form CategoryForm) (*models.Category, error) {
	var c models.Category
	err := s.guard.Run(ctx, caller, Mutation{Entity: EntityCategory, Action: "create", Paths: categoryPaths}, func() error {
		if err := Validate(&form); err != nil {
			return err
		}
		form.apply(&c)
		return s.db.WithContext(ctx).Create(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CategoryService) Update(ctx context.Context, caller session.Caller, id uuid.UUID, form CategoryForm) (*models.Category, error) {
	var out *models.Category
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityCategory, Action: "update", EntityID: id.String(), Paths: categoryPaths,
	}, func() error {
		if err := Validate(&form); err != nil {
			return err
		}
		c, err := findCategory(s.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Model(c).Updates(form.columns()).Error; err != nil {
			return err
		}
		form.apply(c)
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CategoryService) UpdateStatus(ctx context.Context, caller session.Caller, id uuid.UUID, status models.CategoryStatus) (*models.Category, error) {
	var out *models.Category
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityCategory, Action: "update_status", EntityID: id.String(), Paths: categoryPaths,
	}, func() error {
		c, err := findCategory(s.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Model(c).Update("status", status).Error; err != nil {
			return err
		}
		c.Status = status
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete soft-deletes the category and marks it INACTIVE in one statement.
func (s *CategoryService) Delete(ctx context.Context, caller session.Caller, id uuid.UUID) error {
	return s.guard.Run(ctx, caller, Mutation{
		Entity: EntityCategory, Action: "delete", EntityID: id.String(), Paths: categoryPaths,
	}, func() error {
		return softDelete(s.db.WithContext(ctx), &models.Category{}, id, "INACTIVE", s.now(), ErrCategoryNotFound)
	})
}

func findCategory(db *gorm.DB, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// softDelete stamps deleted_at and the inactive status on a live row.
// An already deleted row is not matched and reports notFound.
func softDelete(db *gorm.DB, model interface{}, id uuid.UUID, inactive string, now time.Time, notFound error) error {
	res := db.Model(model).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     inactive,
		"deleted_at": now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}
