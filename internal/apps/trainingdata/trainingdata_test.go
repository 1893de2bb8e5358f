package trainingdata

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	owner = session.Caller{ID: uuid.New(), Role: models.RoleClient, Status: models.UserStatusApproved}
	admin = session.Caller{ID: uuid.New(), Role: models.RoleAdmin, Status: models.UserStatusApproved}
)

func as(caller session.Caller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session.Set(c, caller)
		return c.Next()
	}
}

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	app := fiber.New()
	New().RegisterRoutes(app.Group("/api/p", as(owner)), db, &config.Config{})
	New().RegisterAdminRoutes(app.Group("/api/admin/p", as(admin)), db, &config.Config{})
	return app, mock
}

func send(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestListIsScopedToOwner(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "training_entries" WHERE user_id = \$1 AND date >= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "training_entries" WHERE user_id = \$1 .* ORDER BY date DESC, created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "activity", "rating"}).
			AddRow(uuid.NewString(), owner.ID.String(), "Run", 4))

	code, body := send(t, app, "GET", "/api/p/training-data?from=2025-01-01", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"activity":"Run"`)
	assert.Contains(t, body, `"total":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRejectsBadDate(t *testing.T) {
	app, _ := newTestApp(t)
	code, _ := send(t, app, "GET", "/api/p/training-data?until=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListRejectsBadPage(t *testing.T) {
	app, mock := newTestApp(t)

	code, body := send(t, app, "GET", "/api/p/training-data?page=two", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"success":false,"error":"invalid page: \"two\""}`, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateValidates(t *testing.T) {
	app, mock := newTestApp(t)

	code, body := send(t, app, "POST", "/api/p/training-data", `{"activity":"","date":"2025-02-01","duration_in_minutes":30,"rating":9}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, `"activity":"is required"`)
	assert.Contains(t, body, `"rating":"must be at most 5"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsUnparseableDate(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := send(t, app, "POST", "/api/p/training-data", `{"activity":"Swim","date":"02/01/2025","duration_in_minutes":30,"rating":3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body, `"date"`)
}

func TestCreate(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`INSERT INTO "training_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	code, body := send(t, app, "POST", "/api/p/training-data", `{"activity":"Swim","date":"2025-02-01","duration_in_minutes":45,"rating":5}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, owner.ID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStoreFailureIsMasked(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`INSERT INTO "training_entries"`).
		WillReturnError(errors.New("pq: relation \"training_entries\" does not exist"))

	code, body := send(t, app, "POST", "/api/p/training-data", `{"activity":"Swim","date":"2025-02-01","duration_in_minutes":45,"rating":5}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"success":false,"error":"failed to create training entry"}`, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOtherUsersEntry(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectQuery(`SELECT \* FROM "training_entries" WHERE \(id = \$1 AND user_id = \$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	code, body := send(t, app, "PUT", "/api/p/training-data/"+uuid.NewString(), `{"activity":"Swim","date":"2025-02-01","duration_in_minutes":45,"rating":5}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"success":false,"error":"training entry not found"}`, body)
}

func TestDelete(t *testing.T) {
	app, mock := newTestApp(t)
	mock.ExpectExec(`UPDATE "training_entries" SET "deleted_at"=\$1 WHERE \(id = \$2 AND user_id = \$3\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "training_entries"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	code, body := send(t, app, "DELETE", "/api/p/training-data/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"success":true}`, body)

	code, body = send(t, app, "DELETE", "/api/p/training-data/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, `"success":false`)
}

func TestAdminListFiltersByUser(t *testing.T) {
	app, mock := newTestApp(t)
	target := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "training_entries" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	code, _ := send(t, app, "GET", "/api/admin/p/training-data?user_id="+target.String(), "")
	assert.Equal(t, http.StatusOK, code)
	assert.NoError(t, mock.ExpectationsWereMet())

	code, _ = send(t, app, "GET", "/api/admin/p/training-data?user_id=nope", "")
	assert.Equal(t, http.StatusBadRequest, code)
}
