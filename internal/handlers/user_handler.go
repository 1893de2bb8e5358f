package handlers

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	p := newListParams(c)
	f := services.UserFilter{
		Search: p.str("search", "q"),
		Status: enumParam(p, models.ParseUserStatus, "status"),
		Role:   enumParam(p, models.ParseRole, "role"),
	}
	opts := p.options()
	if p.err != nil {
		return badRequest(c, p.err.Error())
	}

	res, err := h.users.List(c.UserContext(), caller, f, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid user id")
	}
	u, err := h.users.Get(c.UserContext(), caller, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": u})
}

func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := models.ParseUserStatus(req.Status)
	if err != nil {
		return respondError(c, err)
	}
	u, err := h.users.UpdateStatus(c.UserContext(), caller, id, status)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, u)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return respondError(c, err)
	}
	u, err := h.users.UpdateRole(c.UserContext(), caller, id, role)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, u)
}
