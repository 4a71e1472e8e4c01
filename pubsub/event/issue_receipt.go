package event

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"ticketservice/entity"
)

func (h Handler) IssueReceiptHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"IssueReceiptHandler",
		func(ctx context.Context, event *entity.PaymentTaken_v1) error {
			log.FromContext(ctx).WithField("payment_id", event.PaymentID).Info("Issuing receipt")

			request := entity.IssueReceiptRequest{
				PaymentID: event.PaymentID,
				Price: entity.Money{
					Amount:   strconv.Itoa(event.Amount),
					Currency: h.currency,
				},
				IdempotencyKey: event.Header.IdempotencyKey,
			}

			resp, err := h.receiptsService.IssueReceipt(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to issue receipt: %w", err)
			}

			return h.eventBus.Publish(ctx, entity.PaymentReceiptIssued_v1{
				Header:        entity.NewEventHeaderWithIdempotencyKey(event.Header.IdempotencyKey),
				PaymentID:     event.PaymentID,
				ReceiptNumber: resp.ReceiptNumber,
				IssuedAt:      resp.IssuedAt,
			})
		},
	)
}
