package handlers

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	p := newListParams(c)
	f := services.CategoryFilter{
		Search:      p.str("search", "q"),
		Status:      enumParam(p, models.ParseCategoryStatus, "status"),
		MinDuration: p.number("minDuration", "min_duration"),
		MaxDuration: p.number("maxDuration", "max_duration"),
		MinCapacity: p.number("minCapacity", "min_capacity"),
		MaxCapacity: p.number("maxCapacity", "max_capacity"),
	}
	opts := p.options()
	if p.err != nil {
		return badRequest(c, p.err.Error())
	}

	res, err := h.categories.List(c.UserContext(), caller, f, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *CategoryHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.categories.Statuses()})
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid category id")
	}
	cat, err := h.categories.Get(c.UserContext(), caller, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": cat})
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	var form services.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body")
	}
	cat, err := h.categories.Create(c.UserContext(), caller, form)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusCreated, cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid category id")
	}
	var form services.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid request body")
	}
	cat, err := h.categories.Update(c.UserContext(), caller, id, form)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, cat)
}

func (h *CategoryHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid category id")
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := models.ParseCategoryStatus(req.Status)
	if err != nil {
		return respondError(c, err)
	}
	cat, err := h.categories.UpdateStatus(c.UserContext(), caller, id, status)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid category id")
	}
	if err := h.categories.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, nil)
}
