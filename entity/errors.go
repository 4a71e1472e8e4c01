package entity

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnknownTicketKind  = errors.New("unknown ticket type")
	ErrInvalidTicketCount = errors.New("number of tickets must be positive")
)

// PurchaseRejectedError is returned when a purchase breaks a business rule.
// Reasons are fixed strings so callers can compare them directly.
type PurchaseRejectedError struct {
	Reason string
}

func (e PurchaseRejectedError) Error() string {
	return e.Reason
}

var (
	ErrInvalidAccountID     = PurchaseRejectedError{Reason: "Invalid account ID"}
	ErrInvalidTicketRequest = PurchaseRejectedError{Reason: "Invalid ticket request"}
	ErrTooManyTickets       = PurchaseRejectedError{Reason: "Cannot purchase more than 20 tickets at a time"}
	ErrAdultTicketRequired  = PurchaseRejectedError{Reason: "Cannot purchase child or infant tickets without purchasing an adult ticket"}
)
