package handlers

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LocationHandler struct {
	locations *services.LocationService
}

func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

func (h *LocationHandler) List(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	p := newListParams(c)
	f := services.LocationFilter{
		Search:         p.str("search", "q"),
		Status:         enumParam(p, models.ParseLocationStatus, "status"),
		ApprovalStatus: enumParam(p, models.ParseLocationApprovalStatus, "approvalStatus", "approval_status"),
		State:          p.str("state"),
		Country:        p.str("country"),
		MinCapacity:    p.number("minCapacity", "min_capacity"),
		MaxCapacity:    p.number("maxCapacity", "max_capacity"),
	}
	opts := p.options()
	if p.err != nil {
		return badRequest(c, p.err.Error())
	}

	res, err := h.locations.List(c.UserContext(), caller, f, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *LocationHandler) Countries(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	countries, err := h.locations.Countries(c.UserContext(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": countries})
}

func (h *LocationHandler) States(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	states, err := h.locations.States(c.UserContext(), caller, c.Query("country"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": states})
}

func (h *LocationHandler) Get(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid location id")
	}
	l, err := h.locations.Get(c.UserContext(), caller, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": l})
}

func (h *LocationHandler) Create(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	var form services.LocationForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body")
	}
	l, err := h.locations.Create(c.UserContext(), caller, form)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusCreated, l)
}

func (h *LocationHandler) Update(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid location id")
	}
	var form services.LocationForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body")
	}
	l, err := h.locations.Update(c.UserContext(), caller, id, form)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, l)
}

func (h *LocationHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid location id")
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := models.ParseLocationStatus(req.Status)
	if err != nil {
		return respondError(c, err)
	}
	l, err := h.locations.UpdateStatus(c.UserContext(), caller, id, status)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, l)
}

func (h *LocationHandler) UpdateApprovalStatus(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid location id")
	}
	var req dto.ApprovalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := models.ParseLocationApprovalStatus(req.ApprovalStatus)
	if err != nil {
		return respondError(c, err)
	}
	l, err := h.locations.UpdateApprovalStatus(c.UserContext(), caller, id, status)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, l)
}

func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid location id")
	}
	if err := h.locations.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, nil)
}
