package dto

import "github.com/google/uuid"

// MutationResponse is the uniform result of every state change.
type MutationResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type ManualPaymentRequest struct {
	BookingIDs []uuid.UUID `json:"booking_ids"`
}

type ManualPaymentResponse struct {
	Updated int64 `json:"updated"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ApprovalStatusRequest struct {
	ApprovalStatus string `json:"approval_status"`
}

type RoleRequest struct {
	Role string `json:"role"`
}
