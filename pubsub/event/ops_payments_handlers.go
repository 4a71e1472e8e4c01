package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"ticketservice/entity"
)

type OpsPaymentsReadModel interface {
	Upsert(ctx context.Context, paymentID string, update func(payment *entity.OpsPayment) error) error
}

type OpsPaymentHandlers struct {
	repo OpsPaymentsReadModel
}

func NewOpsPaymentHandlers(repo OpsPaymentsReadModel) OpsPaymentHandlers {
	if repo == nil {
		panic("missing repo")
	}

	return OpsPaymentHandlers{repo: repo}
}

func (r OpsPaymentHandlers) OnPaymentTaken(ctx context.Context, event *entity.PaymentTaken_v1) error {
	log.FromContext(ctx).WithField("payment_id", event.PaymentID).Info("Updating ops payment read model")

	err := r.repo.Upsert(ctx, event.PaymentID, func(payment *entity.OpsPayment) error {
		payment.AccountID = event.AccountID
		payment.Amount = event.Amount
		payment.TakenAt = event.TakenAt
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not update ops payment read model: %w", err)
	}

	return nil
}

func (r OpsPaymentHandlers) OnPaymentReceiptIssued(ctx context.Context, event *entity.PaymentReceiptIssued_v1) error {
	err := r.repo.Upsert(ctx, event.PaymentID, func(payment *entity.OpsPayment) error {
		payment.ReceiptNumber = event.ReceiptNumber
		payment.ReceiptIssuedAt = event.IssuedAt
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not update ops payment read model: %w", err)
	}

	return nil
}
