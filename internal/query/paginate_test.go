package query

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type widget struct {
	ID        uint
	Name      string
	Status    string
	Weight    int
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func widgetRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "status", "weight", "created_at", "deleted_at"})
	for i := 0; i < n; i++ {
		rows.AddRow(i+1, "w", "PENDING", 1, time.Now(), nil)
	}
	return rows
}

func TestOptionsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"defaults", Options{}, Options{Page: 1, PerPage: 15}},
		{"negative page", Options{Page: -3, PerPage: 20}, Options{Page: 1, PerPage: 20}},
		{"perPage below floor", Options{Page: 2, PerPage: 5}, Options{Page: 2, PerPage: 15}},
		{"perPage above ceiling", Options{Page: 1, PerPage: 500}, Options{Page: 1, PerPage: 50}},
		{"within range", Options{Page: 4, PerPage: 30}, Options{Page: 4, PerPage: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestNewPaginationTotalPages(t *testing.T) {
	for _, tc := range []struct {
		total int64
		per   int
		pages int
	}{
		{0, 15, 0}, {1, 15, 1}, {15, 15, 1}, {16, 15, 2}, {20, 15, 2}, {100, 50, 2}, {101, 50, 3},
	} {
		p := NewPagination(tc.total, Options{Page: 1, PerPage: tc.per})
		assert.Equal(t, tc.pages, p.TotalPages, "total=%d perPage=%d", tc.total, tc.per)
	}
}

func TestPaginateFirstPage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "widgets" WHERE status = \$1 AND "widgets"."deleted_at" IS NULL`).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))
	mock.ExpectQuery(`SELECT \* FROM "widgets" WHERE status = \$1 AND "widgets"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT`).
		WillReturnRows(widgetRows(15))

	res, err := Paginate[widget](context.Background(), db, Spec{
		Scopes: []Scope{Equal("status", "PENDING")},
	}, Options{Page: 1, PerPage: 15})
	require.NoError(t, err)

	assert.Len(t, res.Data, 15)
	assert.Equal(t, Pagination{Total: 20, TotalPages: 2, CurrentPage: 1, PerPage: 15}, res.Pagination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateSecondPageUsesOffset(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "widgets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))
	mock.ExpectQuery(`ORDER BY name ASC LIMIT .* OFFSET`).
		WillReturnRows(widgetRows(5))

	res, err := Paginate[widget](context.Background(), db, Spec{Order: "name ASC"}, Options{Page: 2, PerPage: 15})
	require.NoError(t, err)

	assert.Len(t, res.Data, 5)
	assert.Equal(t, 2, res.Pagination.CurrentPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateEmptyResultIsNonNil(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "widgets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	res, err := Paginate[widget](context.Background(), db, Spec{}, Options{})
	require.NoError(t, err)

	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Pagination.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateCountError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\)`).WillReturnError(assert.AnError)

	_, err := Paginate[widget](context.Background(), db, Spec{}, Options{})
	assert.ErrorIs(t, err, assert.AnError)
}
