package handlers

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.GoogleSignIn(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.authService.Logout(c.UserContext(), &req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Register completes the caller's profile after first sign-in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	u, err := h.authService.Register(c.UserContext(), caller, req)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, dto.NewUserResponse(u))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	u, err := h.authService.Me(c.UserContext(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(u)})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	u, err := h.authService.UpdateProfile(c.UserContext(), caller, req)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, dto.NewUserResponse(u))
}
