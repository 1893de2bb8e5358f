package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps service errors onto the uniform mutation shape.
func respondError(c *fiber.Ctx, err error) error {
	var (
		verr *services.ValidationError
		serr *services.StoreError
		eerr *models.InvalidEnumError
	)
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.MutationResponse{
			Error: "validation failed", Fields: verr.Fields,
		})
	case errors.As(err, &eerr):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrInvalidIDToken):
		return fail(c, fiber.StatusUnauthorized, "invalid or expired credentials")
	case errors.As(err, &serr):
		return fail(c, fiber.StatusInternalServerError, serr.Error())
	}
	slog.Error("unhandled handler error", "method", c.Method(), "path", c.Path(), "error", err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.MutationResponse{Error: msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadRequest, msg)
}

func succeed(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.MutationResponse{Success: true, Data: data})
}

// callerOrAbort fetches the session caller. The returned error is a 401
// fiber.Error for the app's error handler.
func callerOrAbort(c *fiber.Ctx) (session.Caller, error) {
	caller, err := session.FromCtx(c)
	if err != nil {
		return session.Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return caller, nil
}

func idParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
