package middleware

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits callers whose stored role is ADMIN. It must run after
// LoadCaller. Services check the role again before every mutation.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := session.FromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !caller.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
