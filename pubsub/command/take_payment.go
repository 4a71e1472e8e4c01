package command

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"ticketservice/entity"
)

func (h Handler) TakePaymentHandler() cqrs.CommandHandler {
	return cqrs.NewCommandHandler(
		"TakePaymentHandler",
		func(ctx context.Context, cmd *entity.TakePayment) error {
			log.FromContext(ctx).Infof("Taking payment of %d for account %d", cmd.Amount, cmd.AccountID)

			return h.paymentsRepo.Store(ctx, entity.Payment{
				PaymentID:      uuid.NewString(),
				AccountID:      cmd.AccountID,
				Amount:         cmd.Amount,
				IdempotencyKey: cmd.Header.IdempotencyKey,
				TakenAt:        time.Now().UTC(),
			})
		},
	)
}
