package models

import "fmt"

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusRejected UserStatus = "REJECTED"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodPayPal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodAdminManual  PaymentMethod = "ADMIN_MANUAL"
)

type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "ACTIVE"
	CategoryStatusInactive CategoryStatus = "INACTIVE"
)

type LocationStatus string

const (
	LocationStatusActive   LocationStatus = "ACTIVE"
	LocationStatusInactive LocationStatus = "INACTIVE"
)

type LocationApprovalStatus string

const (
	LocationApprovalPending  LocationApprovalStatus = "PENDING"
	LocationApprovalApproved LocationApprovalStatus = "APPROVED"
	LocationApprovalRejected LocationApprovalStatus = "REJECTED"
)

var (
	Roles                    = []Role{RoleClient, RoleProvider, RoleAdmin}
	UserStatuses             = []UserStatus{UserStatusPending, UserStatusApproved, UserStatusRejected}
	BookingStatuses          = []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled}
	PaymentStatuses          = []PaymentStatus{PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusCancelled, PaymentStatusFailed}
	PaymentMethods           = []PaymentMethod{PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodBankTransfer, PaymentMethodAdminManual}
	CategoryStatuses         = []CategoryStatus{CategoryStatusActive, CategoryStatusInactive}
	LocationStatuses         = []LocationStatus{LocationStatusActive, LocationStatusInactive}
	LocationApprovalStatuses = []LocationApprovalStatus{LocationApprovalPending, LocationApprovalApproved, LocationApprovalRejected}
)

// InvalidEnumError is returned when a value is outside a closed vocabulary.
type InvalidEnumError struct {
	Kind  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Value)
}

func parseEnum[T ~string](kind, s string, allowed []T) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, &InvalidEnumError{Kind: kind, Value: s}
}

func ParseRole(s string) (Role, error) { return parseEnum("role", s, Roles) }

func ParseUserStatus(s string) (UserStatus, error) { return parseEnum("user status", s, UserStatuses) }

func ParseBookingStatus(s string) (BookingStatus, error) {
	return parseEnum("booking status", s, BookingStatuses)
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum("payment status", s, PaymentStatuses)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	return parseEnum("payment method", s, PaymentMethods)
}

func ParseCategoryStatus(s string) (CategoryStatus, error) {
	return parseEnum("category status", s, CategoryStatuses)
}

func ParseLocationStatus(s string) (LocationStatus, error) {
	return parseEnum("location status", s, LocationStatuses)
}

func ParseLocationApprovalStatus(s string) (LocationApprovalStatus, error) {
	return parseEnum("approval status", s, LocationApprovalStatuses)
}
