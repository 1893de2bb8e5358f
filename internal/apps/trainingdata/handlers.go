package trainingdata

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/query"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EntryHandler struct {
	service *EntryService
}

func NewEntryHandler(service *EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

func (h *EntryHandler) List(c *fiber.Ctx) error {
	caller, err := handlers.CallerOrAbort(c)
	if err != nil {
		return err
	}
	f, opts, err := parseList(c)
	if err != nil {
		return handlers.BadRequest(c, err.Error())
	}
	f.UserID = caller.ID

	res, err := h.service.List(c.UserContext(), f, opts)
	if err != nil {
		return entryError(c, caller.ID, "list", err)
	}
	return c.JSON(res)
}

// AdminList pages entries across users, optionally narrowed by ?user_id=.
func (h *EntryHandler) AdminList(c *fiber.Ctx) error {
	caller, err := handlers.CallerOrAbort(c)
	if err != nil {
		return err
	}
	f, opts, err := parseList(c)
	if err != nil {
		return handlers.BadRequest(c, err.Error())
	}

	res, err := h.service.List(c.UserContext(), f, opts)
	if err != nil {
		return entryError(c, caller.ID, "admin_list", err)
	}
	return c.JSON(res)
}

func (h *EntryHandler) Create(c *fiber.Ctx) error {
	caller, err := handlers.CallerOrAbort(c)
	if err != nil {
		return err
	}
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "invalid request body")
	}

	entry, err := h.service.Create(c.UserContext(), caller.ID, req)
	if err != nil {
		return entryError(c, caller.ID, "create", err)
	}
	return handlers.Succeed(c, fiber.StatusCreated, entry)
}

func (h *EntryHandler) Update(c *fiber.Ctx) error {
	caller, err := handlers.CallerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := handlers.IDParam(c)
	if !ok {
		return handlers.BadRequest(c, "invalid entry id")
	}
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BadRequest(c, "invalid request body")
	}

	entry, err := h.service.Update(c.UserContext(), caller.ID, id, req)
	if err != nil {
		return entryError(c, caller.ID, "update", err)
	}
	return handlers.Succeed(c, fiber.StatusOK, entry)
}

func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	caller, err := handlers.CallerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := handlers.IDParam(c)
	if !ok {
		return handlers.BadRequest(c, "invalid entry id")
	}

	if err := h.service.Delete(c.UserContext(), caller.ID, id); err != nil {
		return entryError(c, caller.ID, "delete", err)
	}
	return handlers.Succeed(c, fiber.StatusOK, nil)
}

// parseList reads search, from/until dates and paging. user_id narrows the
// admin list and is ignored for owners, whose id always wins.
func parseList(c *fiber.Ctx) (EntryFilter, query.Options, error) {
	p := handlers.NewListParams(c)
	f := EntryFilter{
		UserID: p.UUID("user_id", "userId"),
		Search: p.String("search", "q"),
		From:   p.Date(false, "from"),
		Until:  p.Date(true, "until"),
	}
	opts := p.Options()
	return f, opts, p.Err()
}

// entryError logs store failures before answering with the shared mapping.
func entryError(c *fiber.Ctx, userID uuid.UUID, action string, err error) error {
	var serr *services.StoreError
	if errors.As(err, &serr) {
		slog.ErrorContext(c.UserContext(), "training entry operation failed",
			"user_id", userID.String(), "action", action, "entity", entityName,
			"error", serr.Err.Error())
	}
	return handlers.RespondError(c, err)
}
