package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// LoadCaller resolves the token subject to a live user and stores the
// resulting session.Caller in locals. Role and status are read from the
// database on every request.
func LoadCaller(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := session.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid token",
			})
		}

		var user models.User
		if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Account not found",
				})
			}
			slog.Error("failed to load caller", "user_id", userID.String(), "error", err)
			return fiber.NewError(fiber.StatusInternalServerError)
		}

		session.Set(c, session.FromUser(&user))
		return c.Next()
	}
}

// RequireApproved sends PENDING users to the registration page and refuses
// REJECTED users.
func RequireApproved(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := session.FromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if caller.IsApproved() {
			return c.Next()
		}
		switch caller.Status {
		case models.UserStatusPending:
			return c.Redirect(cfg.RegistrationPath, fiber.StatusSeeOther)
		default:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Account access has been revoked",
			})
		}
	}
}
