package handlers

import (
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func parseBookingFilter(c *fiber.Ctx) (services.BookingFilter, *listParams) {
	p := newListParams(c)
	f := services.BookingFilter{
		Search:        p.str("search", "q"),
		Status:        enumParam(p, models.ParseBookingStatus, "status"),
		PaymentStatus: enumParam(p, models.ParsePaymentStatus, "paymentStatus", "payment_status"),
		PaymentMethod: enumParam(p, models.ParsePaymentMethod, "paymentMethod", "payment_method"),
		CategoryID:    p.uuidOf("categoryId", "category_id", "category"),
		LocationID:    p.uuidOf("locationId", "location_id", "location"),
		ClientID:      p.uuidOf("clientId", "client_id"),
		ProviderID:    p.uuidOf("providerId", "provider_id"),
		StartDate:     p.date(false, "startDate", "start_date"),
		EndDate:       p.date(true, "endDate", "end_date"),
	}
	return f, p
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	f, p := parseBookingFilter(c)
	opts := p.options()
	if p.err != nil {
		return badRequest(c, p.err.Error())
	}

	res, err := h.bookings.List(c.UserContext(), caller, f, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid booking id")
	}

	b, err := h.bookings.Get(c.UserContext(), caller, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": b})
}

func (h *BookingHandler) Stats(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	stats, err := h.bookings.Stats(c.UserContext(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	var req dto.BookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := models.ParseBookingStatus(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	b, err := h.bookings.UpdateStatus(c.UserContext(), caller, id, status)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, b)
}

func (h *BookingHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid booking id")
	}
	var req dto.PaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	status, err := models.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return respondError(c, err)
	}

	b, err := h.bookings.UpdatePaymentStatus(c.UserContext(), caller, id, status)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, b)
}

func (h *BookingHandler) ManualPayment(c *fiber.Ctx) error {
	caller, err := callerOrAbort(c)
	if err != nil {
		return err
	}
	var req dto.ManualPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	n, err := h.bookings.ManualPayment(c.UserContext(), caller, req.BookingIDs)
	if err != nil {
		return respondError(c, err)
	}
	return succeed(c, fiber.StatusOK, dto.ManualPaymentResponse{Updated: n})
}
