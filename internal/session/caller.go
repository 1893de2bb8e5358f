// Package session carries the authenticated caller from the HTTP boundary into
// services. Services receive a Caller explicitly and never read fiber locals.
package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerKey = "caller"

var ErrNoCaller = errors.New("no authenticated caller")

// Caller is the identity a request acts as. Role and Status come from the
// users table, not from token claims, so revocations apply immediately.
type Caller struct {
	ID     uuid.UUID
	Role   models.Role
	Status models.UserStatus
	Email  string
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

func (c Caller) IsApproved() bool { return c.Status == models.UserStatusApproved }

// FromUser builds a Caller from a freshly loaded user row.
func FromUser(u *models.User) Caller {
	return Caller{ID: u.ID, Role: u.Role, Status: u.Status, Email: u.Email}
}

func Set(c *fiber.Ctx, caller Caller) {
	c.Locals(callerKey, caller)
}

func FromCtx(c *fiber.Ctx) (Caller, error) {
	caller, ok := c.Locals(callerKey).(Caller)
	if !ok {
		return Caller{}, ErrNoCaller
	}
	return caller, nil
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
