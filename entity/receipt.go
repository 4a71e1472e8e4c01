package entity

import "time"

type IssueReceiptRequest struct {
	PaymentID      string
	Price          Money
	IdempotencyKey string
}

type IssueReceiptResponse struct {
	ReceiptNumber string    `json:"number"`
	IssuedAt      time.Time `json:"issued_at"`
}
