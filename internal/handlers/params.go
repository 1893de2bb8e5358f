package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// listParams reads list query parameters, accepting camelCase and snake_case
// spellings. The first parse failure is kept in err.
type listParams struct {
	c   *fiber.Ctx
	err error
}

func newListParams(c *fiber.Ctx) *listParams {
	return &listParams{c: c}
}

func (p *listParams) str(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(p.c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}

func (p *listParams) fail(format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

func (p *listParams) number(keys ...string) int {
	raw := p.str(keys...)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail("invalid %s: %q", keys[0], raw)
		return 0
	}
	return n
}

func (p *listParams) uuidOf(keys ...string) uuid.UUID {
	raw := p.str(keys...)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.fail("invalid %s: %q", keys[0], raw)
		return uuid.Nil
	}
	return id
}

// date accepts RFC 3339 or YYYY-MM-DD. With endOfDay, a bare date covers the
// whole day.
func (p *listParams) date(endOfDay bool, keys ...string) time.Time {
	raw := p.str(keys...)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		p.fail("invalid %s: %q", keys[0], raw)
		return time.Time{}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}

func (p *listParams) options() query.Options {
	return query.Options{
		Page:    p.number("page"),
		PerPage: p.number("perPage", "per_page"),
	}
}

// enumParam parses a closed vocabulary value. Empty and ALL mean no filter.
func enumParam[T ~string](p *listParams, parse func(string) (T, error), keys ...string) T {
	var zero T
	raw := strings.ToUpper(p.str(keys...))
	if raw == "" || raw == "ALL" {
		return zero
	}
	v, err := parse(raw)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return zero
	}
	return v
}
