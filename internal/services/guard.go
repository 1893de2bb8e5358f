package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/revalidate"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

// Mutation names a state change for authorization, logging and revalidation.
type Mutation struct {
	Entity   string
	Action   string
	EntityID string
	Paths    []string
	// Op is the phrase shown in "failed to <op>". Derived from Action and
	// Entity when empty: update_status on booking reads "update booking status".
	Op string
}

func (m Mutation) op() string {
	if m.Op != "" {
		return m.Op
	}
	words := strings.Split(m.Action, "_")
	return strings.Join(append([]string{words[0], m.Entity}, words[1:]...), " ")
}

// Guard wraps every admin mutation: role check, error classification and
// revalidation of dependent views.
type Guard struct {
	revalidator revalidate.Revalidator
	metrics     *metrics.Metrics
}

func NewGuard(r revalidate.Revalidator, m *metrics.Metrics) *Guard {
	if r == nil {
		r = revalidate.NoOp{}
	}
	return &Guard{revalidator: r, metrics: m}
}

// Run executes fn on behalf of caller if caller is an admin.
func (g *Guard) Run(ctx context.Context, caller session.Caller, m Mutation, fn func() error) error {
	if !caller.IsAdmin() {
		slog.Warn("unauthorized mutation attempt",
			"user_id", caller.ID.String(), "role", string(caller.Role),
			"entity", m.Entity, "action", m.Action, "entity_id", m.EntityID)
		g.observe(m, metrics.OutcomeUnauthorized, 0)
		return ErrUnauthorized
	}
	return g.run(ctx, caller, m, fn)
}

// RunAs is Run without the admin requirement, for self-service mutations
// whose authorization is decided by fn itself.
func (g *Guard) RunAs(ctx context.Context, caller session.Caller, m Mutation, fn func() error) error {
	return g.run(ctx, caller, m, fn)
}

func (g *Guard) run(ctx context.Context, caller session.Caller, m Mutation, fn func() error) error {
	start := time.Now()
	err := g.classify(m, fn())
	elapsed := time.Since(start)

	var (
		verr *ValidationError
		serr *StoreError
	)
	switch {
	case err == nil:
		g.observe(m, metrics.OutcomeOK, elapsed)
	case errors.Is(err, ErrUnauthorized):
		g.observe(m, metrics.OutcomeUnauthorized, elapsed)
		return err
	case errors.As(err, &verr):
		g.observe(m, metrics.OutcomeInvalid, elapsed)
		return err
	case errors.Is(err, ErrNotFound):
		g.observe(m, metrics.OutcomeNotFound, elapsed)
		return err
	case errors.As(err, &serr):
		g.observe(m, metrics.OutcomeError, elapsed)
		slog.ErrorContext(ctx, "mutation failed",
			"user_id", caller.ID.String(), "action", m.Action,
			"entity", m.Entity, "entity_id", m.EntityID,
			"error", serr.Err.Error(), "latency_ms", elapsed)
		captureStoreError(ctx, m, serr)
		return err
	}

	if rerr := g.revalidator.Revalidate(ctx, m.Entity, m.Paths...); rerr != nil {
		slog.WarnContext(ctx, "revalidation failed", "entity", m.Entity, "paths", m.Paths, "error", rerr)
		if g.metrics != nil {
			g.metrics.RevalidationFailed(m.Entity)
		}
	}
	return nil
}

// classify passes through domain errors and wraps everything else.
func (g *Guard) classify(m Mutation, err error) error {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNotFound), errors.As(err, &verr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(m.Entity)
	}
	var serr *StoreError
	if errors.As(err, &serr) {
		return serr
	}
	return &StoreError{Op: m.op(), Err: err}
}

func (g *Guard) observe(m Mutation, outcome string, elapsed time.Duration) {
	if g.metrics != nil {
		g.metrics.ObserveMutation(m.Entity, m.Action, outcome, elapsed)
	}
}

func captureStoreError(ctx context.Context, m Mutation, err *StoreError) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("entity", m.Entity)
		scope.SetTag("action", m.Action)
		scope.SetExtra("entity_id", m.EntityID)
		hub.CaptureException(err.Err)
	})
}

func notFound(entity string) error {
	switch entity {
	case EntityBooking:
		return ErrBookingNotFound
	case EntityCategory:
		return ErrCategoryNotFound
	case EntityLocation:
		return ErrLocationNotFound
	case EntityUser:
		return ErrUserNotFound
	}
	return ErrNotFound
}

const (
	EntityBooking  = "booking"
	EntityCategory = "category"
	EntityLocation = "location"
	EntityUser     = "user"
)
