package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentTaken_v1 struct {
	Header    EventHeader `json:"header"`
	PaymentID string      `json:"payment_id"`
	AccountID int64       `json:"account_id"`
	Amount    int         `json:"amount"`
	TakenAt   time.Time   `json:"taken_at"`
}

type SeatsReserved_v1 struct {
	Header        EventHeader `json:"header"`
	ReservationID string      `json:"reservation_id"`
	AccountID     int64       `json:"account_id"`
	Seats         int         `json:"seats"`
	ReservedAt    time.Time   `json:"reserved_at"`
}

type PaymentReceiptIssued_v1 struct {
	Header        EventHeader `json:"header"`
	PaymentID     string      `json:"payment_id"`
	ReceiptNumber string      `json:"receipt_number"`
	IssuedAt      time.Time   `json:"issued_at"`
}
