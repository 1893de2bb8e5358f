// Package query holds the shared list machinery: filter scopes composed per
// entity and one generic paginator that counts and fetches over them.
package query

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 15
	MinPerPage     = 15
	MaxPerPage     = 50
	DefaultOrder   = "created_at DESC"
)

// Scope narrows a statement. Scopes are plain gorm scopes so they compose
// with db.Scopes.
type Scope = func(*gorm.DB) *gorm.DB

// Options is the page request as received from the caller.
type Options struct {
	Page    int
	PerPage int
}

// Normalize clamps page to >= 1 and perPage into [MinPerPage, MaxPerPage].
func (o Options) Normalize() Options {
	if o.Page < 1 {
		o.Page = 1
	}
	switch {
	case o.PerPage <= 0:
		o.PerPage = DefaultPerPage
	case o.PerPage < MinPerPage:
		o.PerPage = MinPerPage
	case o.PerPage > MaxPerPage:
		o.PerPage = MaxPerPage
	}
	return o
}

func (o Options) Offset() int {
	return (o.Page - 1) * o.PerPage
}

type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
}

// NewPagination expects normalized options.
func NewPagination(total int64, opts Options) Pagination {
	pages := 0
	if total > 0 {
		pages = int((total + int64(opts.PerPage) - 1) / int64(opts.PerPage))
	}
	return Pagination{
		Total:       total,
		TotalPages:  pages,
		CurrentPage: opts.Page,
		PerPage:     opts.PerPage,
	}
}

type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Spec describes one list query: the filter scopes, an ORDER BY expression
// and associations to preload on the fetched page.
type Spec struct {
	Scopes   []Scope
	Order    string
	Preloads []string
}

// Paginate counts the rows matching spec and fetches one page of them.
// The two statements share the same scopes but not a transaction.
func Paginate[T any](ctx context.Context, db *gorm.DB, spec Spec, opts Options) (*Result[T], error) {
	opts = opts.Normalize()

	base := db.WithContext(ctx).Model(new(T)).Scopes(spec.Scopes...).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	order := spec.Order
	if order == "" {
		order = DefaultOrder
	}

	data := make([]T, 0, opts.PerPage)
	if total > int64(opts.Offset()) {
		fetch := base.Order(order).Limit(opts.PerPage).Offset(opts.Offset())
		for _, p := range spec.Preloads {
			fetch = fetch.Preload(p)
		}
		if err := fetch.Find(&data).Error; err != nil {
			return nil, err
		}
		if data == nil {
			data = []T{}
		}
	}

	return &Result[T]{Data: data, Pagination: NewPagination(total, opts)}, nil
}
