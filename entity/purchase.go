package entity

import "time"

const MaxTicketsPerPurchase = 20

type PurchaseInstruction struct {
	AccountID int64
	Requests  []TicketRequest
}

type Payment struct {
	PaymentID      string    `json:"payment_id" db:"payment_id"`
	AccountID      int64     `json:"account_id" db:"account_id"`
	Amount         int       `json:"amount" db:"amount"`
	IdempotencyKey string    `json:"-" db:"idempotency_key"`
	TakenAt        time.Time `json:"taken_at" db:"taken_at"`
}

type SeatReservation struct {
	ReservationID  string    `json:"reservation_id" db:"reservation_id"`
	AccountID      int64     `json:"account_id" db:"account_id"`
	Seats          int       `json:"seats" db:"seats"`
	IdempotencyKey string    `json:"-" db:"idempotency_key"`
	ReservedAt     time.Time `json:"reserved_at" db:"reserved_at"`
}

type OpsPayment struct {
	PaymentID string    `json:"payment_id"`
	AccountID int64     `json:"account_id"`
	Amount    int       `json:"amount"`
	TakenAt   time.Time `json:"taken_at"`

	ReceiptNumber   string    `json:"receipt_number"`
	ReceiptIssuedAt time.Time `json:"receipt_issued_at"`

	LastUpdate time.Time `json:"last_update"`
}
