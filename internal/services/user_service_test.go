package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUpdateRole(t *testing.T) {
	db, mock := newMockDB(t)
	guard, rec, m := newTestGuard()
	svc := NewUserService(db, guard, m)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), "p@example.com", "Pat", "Doe", "CLIENT", "APPROVED"))
	mock.ExpectExec(`UPDATE "users" SET "role"=\$1,"updated_at"=\$2`).
		WithArgs("PROVIDER", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := svc.UpdateRole(context.Background(), adminCaller, id, models.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, u.Role)
	assert.Equal(t, []string{"/users", "/admin/users"}, rec.Paths())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateStatusMissing(t *testing.T) {
	db, mock := newMockDB(t)
	guard, _, _ := newTestGuard()
	svc := NewUserService(db, guard, nil)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := svc.UpdateStatus(context.Background(), adminCaller, uuid.New(), models.UserStatusRejected)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserListSearch(t *testing.T) {
	db, mock := newMockDB(t)
	guard, _, _ := newTestGuard()
	svc := NewUserService(db, guard, nil)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE \(\(name ILIKE \$1 OR first_name ILIKE \$2 OR last_name ILIKE \$3 OR email ILIKE \$4\)\) AND role = \$5`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .* ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uuid.NewString(), "ada@example.com", "Ada", "L", "ADMIN", "APPROVED"))

	res, err := svc.List(context.Background(), adminCaller, UserFilter{Search: "ada", Role: models.RoleAdmin}, query.Options{})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, int64(1), res.Pagination.Total)
}

func TestUserGetRequiresAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	guard, _, _ := newTestGuard()
	svc := NewUserService(db, guard, nil)

	_, err := svc.Get(context.Background(), clientCaller, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}
