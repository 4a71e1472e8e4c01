package gateway

import (
	"context"
	"sync"
	"time"

	"ticketservice/entity"
)

type ReceiptsMock struct {
	mock sync.Mutex

	IssuedReceipts map[string]entity.IssueReceiptRequest
}

func (c *ReceiptsMock) IssueReceipt(ctx context.Context, request entity.IssueReceiptRequest) (entity.IssueReceiptResponse, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.IssuedReceipts == nil {
		c.IssuedReceipts = make(map[string]entity.IssueReceiptRequest)
	}

	c.IssuedReceipts[request.IdempotencyKey] = request

	return entity.IssueReceiptResponse{
		ReceiptNumber: "mocked-receipt-number",
		IssuedAt:      time.Now(),
	}, nil
}

func (c *ReceiptsMock) Receipts() []entity.IssueReceiptRequest {
	c.mock.Lock()
	defer c.mock.Unlock()

	receipts := make([]entity.IssueReceiptRequest, 0, len(c.IssuedReceipts))
	for _, r := range c.IssuedReceipts {
		receipts = append(receipts, r)
	}

	return receipts
}
