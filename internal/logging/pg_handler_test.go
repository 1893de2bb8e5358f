package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestPGHandlerLiftsMutationAttributes(t *testing.T) {
	h := &PGHandler{}
	child := h.WithAttrs([]slog.Attr{slog.String("user_id", "u-1")}).(*PGHandler)

	rec := slog.NewRecord(time.Now(), slog.LevelError, "mutation failed", 0)
	rec.AddAttrs(
		slog.String("action", "update_status"),
		slog.String("entity", "booking"),
		slog.String("entity_id", "b-1"),
		slog.String("error", "boom"),
		slog.Duration("latency_ms", 42*time.Millisecond),
		slog.Int("attempt", 1),
	)

	entry := child.entryFor(rec)

	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.Equal(t, "update_status", entry.Action)
	assert.Equal(t, "booking", entry.Entity)
	assert.Equal(t, "b-1", entry.EntityID)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 42, entry.LatencyMs)
	assert.Equal(t, "ERROR", entry.Level)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.EqualValues(t, 1, extra["attempt"])
}

func TestPGHandlerStopWritesBuffer(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "system_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	h := NewPGHandler(db)
	slog.New(h).Error("store unavailable", "entity", "booking")
	h.Stop()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGHandlerOnlyErrors(t *testing.T) {
	h := &PGHandler{}
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandlerFansOut(t *testing.T) {
	a, b := &countingHandler{}, &countingHandler{}
	logger := slog.New(NewMultiHandler(a, b))

	logger.Info("hello")

	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
}

type countingHandler struct{ n int }

func (c *countingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (c *countingHandler) Handle(context.Context, slog.Record) error {
	c.n++
	return nil
}
func (c *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *countingHandler) WithGroup(string) slog.Handler      { return c }
