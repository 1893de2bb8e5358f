package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserFilter struct {
	Search string
	Status models.UserStatus
	Role   models.Role
}

func (f UserFilter) Scopes() []query.Scope {
	return []query.Scope{
		query.Search(f.Search, "name", "first_name", "last_name", "email"),
		query.Equal("status", f.Status),
		query.Equal("role", f.Role),
	}
}

var userPaths = []string{"/users", "/admin/users"}

type UserService struct {
	db      *gorm.DB
	guard   *Guard
	metrics *metrics.Metrics
}

func NewUserService(db *gorm.DB, guard *Guard, m *metrics.Metrics) *UserService {
	return &UserService{db: db, guard: guard, metrics: m}
}

func (s *UserService) List(ctx context.Context, caller session.Caller, f UserFilter, opts query.Options) (*query.Result[models.User], error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if s.metrics != nil {
		s.metrics.ObserveList(EntityUser)
	}
	res, err := query.Paginate[models.User](ctx, s.db, query.Spec{Scopes: f.Scopes()}, opts)
	if err != nil {
		return nil, &StoreError{Op: "list users", Err: err}
	}
	return res, nil
}

func (s *UserService) Get(ctx context.Context, caller session.Caller, id uuid.UUID) (*models.User, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	u, err := findUser(s.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, &StoreError{Op: "get user", Err: err}
	}
	return u, nil
}

func (s *UserService) UpdateStatus(ctx context.Context, caller session.Caller, id uuid.UUID, status models.UserStatus) (*models.User, error) {
	return s.updateColumn(ctx, caller, id, "update_status", "status", status, func(u *models.User) { u.Status = status })
}

func (s *UserService) UpdateRole(ctx context.Context, caller session.Caller, id uuid.UUID, role models.Role) (*models.User, error) {
	return s.updateColumn(ctx, caller, id, "update_role", "role", role, func(u *models.User) { u.Role = role })
}

func (s *UserService) updateColumn(ctx context.Context, caller session.Caller, id uuid.UUID, action, column string, value interface{}, apply func(*models.User)) (*models.User, error) {
	var out *models.User
	err := s.guard.Run(ctx, caller, Mutation{
		Entity: EntityUser, Action: action, EntityID: id.String(), Paths: userPaths,
	}, func() error {
		u, err := findUser(s.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Model(u).Update(column, value).Error; err != nil {
			return err
		}
		apply(u)
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
