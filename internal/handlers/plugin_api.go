package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Exported helpers for app plugins, so their routes answer in the same shapes
// as the admin handlers.

func RespondError(c *fiber.Ctx, err error) error { return respondError(c, err) }

func Succeed(c *fiber.Ctx, status int, data interface{}) error { return succeed(c, status, data) }

func BadRequest(c *fiber.Ctx, msg string) error { return badRequest(c, msg) }

func CallerOrAbort(c *fiber.Ctx) (session.Caller, error) { return callerOrAbort(c) }

// IDParam parses the :id route parameter.
func IDParam(c *fiber.Ctx) (uuid.UUID, bool) { return idParam(c) }

// ListParams reads list query parameters with the same spellings and error
// rules as the admin lists. Check Err after reading.
type ListParams struct {
	p *listParams
}

func NewListParams(c *fiber.Ctx) ListParams {
	return ListParams{p: newListParams(c)}
}

func (l ListParams) String(keys ...string) string { return l.p.str(keys...) }

func (l ListParams) UUID(keys ...string) uuid.UUID { return l.p.uuidOf(keys...) }

func (l ListParams) Date(endOfDay bool, keys ...string) time.Time {
	return l.p.date(endOfDay, keys...)
}

func (l ListParams) Options() query.Options { return l.p.options() }

func (l ListParams) Err() error { return l.p.err }
