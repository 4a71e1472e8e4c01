package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ticketservice/entity"
)

type CommandSender interface {
	Send(ctx context.Context, cmd any) error
}

// PaymentAuthority takes payments by sending a TakePayment command.
// The payment is stored by the command handler.
type PaymentAuthority struct {
	commands CommandSender
}

func NewPaymentAuthority(commands CommandSender) PaymentAuthority {
	if commands == nil {
		panic("missing commands")
	}

	return PaymentAuthority{commands: commands}
}

func (p PaymentAuthority) MakePayment(ctx context.Context, accountID int64, amountToPay int) error {
	err := p.commands.Send(ctx, &entity.TakePayment{
		Header:    entity.NewEventHeaderWithIdempotencyKey(commandIdempotencyKey(ctx, "payment")),
		AccountID: accountID,
		Amount:    amountToPay,
	})
	if err != nil {
		return fmt.Errorf("could not send TakePayment command: %w", err)
	}

	return nil
}

// commandIdempotencyKey derives a per-collaborator key from the request key, so
// a retried purchase is not charged or seated twice.
func commandIdempotencyKey(ctx context.Context, suffix string) string {
	key := entity.IdempotencyKeyFromContext(ctx)
	if key == "" {
		key = uuid.NewString()
	}

	return key + "-" + suffix
}
