package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/revalidate"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	admin  = session.Caller{ID: uuid.New(), Role: models.RoleAdmin, Status: models.UserStatusApproved}
	client = session.Caller{ID: uuid.New(), Role: models.RoleClient, Status: models.UserStatusApproved}
)

func asCaller(caller session.Caller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session.Set(c, caller)
		return c.Next()
	}
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

func do(t *testing.T, app *fiber.App, method, target, body string) (int, dto.MutationResponse, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out dto.MutationResponse
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out, raw
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthorized", services.ErrUnauthorized, http.StatusForbidden, services.ErrUnauthorized.Error()},
		{"validation", &services.ValidationError{Fields: map[string]string{"name": "is required"}}, http.StatusUnprocessableEntity, "validation failed"},
		{"invalid enum", &models.InvalidEnumError{Kind: "booking status", Value: "LOST"}, http.StatusBadRequest, `invalid booking status: "LOST"`},
		{"not found", services.ErrLocationNotFound, http.StatusNotFound, "location not found"},
		{"bad refresh token", services.ErrInvalidToken, http.StatusUnauthorized, "invalid or expired credentials"},
		{"store", &services.StoreError{Op: "delete category", Err: errors.New("pq: deadlock detected")}, http.StatusInternalServerError, "failed to delete category"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			code, out, raw := do(t, app, "GET", "/", "")
			assert.Equal(t, tt.code, code)
			assert.False(t, out.Success)
			assert.Equal(t, tt.msg, out.Error)
			assert.NotContains(t, string(raw), "pq:")
		})
	}
}

func TestRespondErrorIncludesFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, &services.ValidationError{Fields: map[string]string{"max_clients": "must be at least 1"}})
	})

	_, out, _ := do(t, app, "GET", "/", "")
	assert.Equal(t, map[string]string{"max_clients": "must be at least 1"}, out.Fields)
}

func TestListParams(t *testing.T) {
	app := fiber.New()
	var (
		got    services.BookingFilter
		opts   query.Options
		parsed error
	)
	app.Get("/", func(c *fiber.Ctx) error {
		f, p := parseBookingFilter(c)
		got, opts, parsed = f, p.options(), p.err
		return nil
	})

	catID := uuid.New()
	_, _, _ = do(t, app, "GET", "/?status=pending&payment_status=ALL&category_id="+catID.String()+
		"&startDate=2025-01-01&end_date=2025-01-31&page=3&per_page=20", "")

	require.NoError(t, parsed)
	assert.Equal(t, models.BookingStatusPending, got.Status)
	assert.Empty(t, got.PaymentStatus)
	assert.Equal(t, catID, got.CategoryID)
	assert.Equal(t, "2025-01-01T00:00:00Z", got.StartDate.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, "2025-01-31T23:59:59Z", got.EndDate.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, query.Options{Page: 3, PerPage: 20}, opts)
}

func TestBookingListRejectsUnknownEnum(t *testing.T) {
	h := NewBookingHandler(services.NewBookingService(nil, services.NewGuard(nil, nil), nil))
	app := fiber.New()
	app.Get("/bookings", asCaller(admin), h.List)

	code, out, _ := do(t, app, "GET", "/bookings?status=LOST", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "LOST")
}

func TestBookingListEmptyPage(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewBookingHandler(services.NewBookingService(db, services.NewGuard(nil, nil), nil))
	app := fiber.New()
	app.Get("/bookings", asCaller(admin), h.List)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	code, _, raw := do(t, app, "GET", "/bookings", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"data":[],"pagination":{"total":0,"totalPages":0,"currentPage":1,"perPage":15}}`, string(raw))
}

func TestBookingStatusNonAdminForbidden(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewBookingHandler(services.NewBookingService(db, services.NewGuard(nil, nil), nil))
	app := fiber.New()
	app.Patch("/bookings/:id/status", asCaller(client), h.UpdateStatus)

	code, out, _ := do(t, app, "PATCH", "/bookings/"+uuid.NewString()+"/status", `{"status":"CANCELLED"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, out.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryCreateValidationResponse(t *testing.T) {
	h := NewCategoryHandler(services.NewCategoryService(nil, services.NewGuard(nil, nil), nil))
	app := fiber.New()
	app.Post("/categories", asCaller(admin), h.Create)

	code, out, _ := do(t, app, "POST", "/categories",
		`{"name":"Yoga","min_duration_in_minutes":30,"max_duration_in_minutes":20,"min_clients":1,"max_clients":4,"status":"ACTIVE"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, out.Fields, "max_duration_in_minutes")
}

func TestCategoryDeleteSuccessRevalidates(t *testing.T) {
	db, mock := newMockDB(t)
	rec := &revalidate.Recorder{}
	h := NewCategoryHandler(services.NewCategoryService(db, services.NewGuard(rec, nil), nil))
	app := fiber.New()
	app.Delete("/categories/:id", asCaller(admin), h.Delete)

	mock.ExpectExec(`UPDATE "categories"`).WillReturnResult(sqlmock.NewResult(0, 1))

	code, out, _ := do(t, app, "DELETE", "/categories/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.Success)
	assert.Contains(t, rec.Paths(), "/admin/categories")
}

func TestInvalidIDParam(t *testing.T) {
	h := NewLocationHandler(services.NewLocationService(nil, services.NewGuard(nil, nil), nil))
	app := fiber.New()
	app.Get("/locations/:id", asCaller(admin), h.Get)

	code, _, _ := do(t, app, "GET", "/locations/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMissingCallerIsUnauthorized(t *testing.T) {
	h := NewUserHandler(services.NewUserService(nil, services.NewGuard(nil, nil), nil))
	app := fiber.New()
	app.Get("/users", h.List)

	code, _, _ := do(t, app, "GET", "/users", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHealthDegraded(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		h      *HealthHandler
		code   int
		status string
		redis  string
	}{
		{"all up", NewHealthHandler(ok, ok), http.StatusOK, "ok", "ok"},
		{"redis disabled", NewHealthHandler(ok, nil), http.StatusOK, "ok", "disabled"},
		{"redis down", NewHealthHandler(ok, down), http.StatusServiceUnavailable, "degraded", "unhealthy: connection refused"},
		{"db down", NewHealthHandler(down, nil), http.StatusServiceUnavailable, "degraded", "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", tt.h.Check)

			code, _, raw := do(t, app, "GET", "/health", "")
			assert.Equal(t, tt.code, code)

			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.redis, resp.Redis)
		})
	}
}
