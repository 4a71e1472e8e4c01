package purchase

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"ticketservice/entity"
)

type PaymentAuthority interface {
	MakePayment(ctx context.Context, accountID int64, amountToPay int) error
}

type SeatAllocator interface {
	ReserveSeat(ctx context.Context, accountID int64, totalSeatsToAllocate int) error
}

// Service validates ticket purchases and hands the totals to the payment and
// seat collaborators. It keeps no state between calls.
type Service struct {
	paymentAuthority PaymentAuthority
	seatAllocator    SeatAllocator
}

func NewService(paymentAuthority PaymentAuthority, seatAllocator SeatAllocator) Service {
	if paymentAuthority == nil {
		panic("missing paymentAuthority")
	}
	if seatAllocator == nil {
		panic("missing seatAllocator")
	}

	return Service{
		paymentAuthority: paymentAuthority,
		seatAllocator:    seatAllocator,
	}
}

// PurchaseTickets charges the account and reserves seats for the requested
// tickets. A broken business rule is reported as entity.PurchaseRejectedError
// and neither collaborator is called. Collaborator errors are returned as is.
func (s Service) PurchaseTickets(ctx context.Context, accountID int64, requests ...entity.TicketRequest) error {
	logger := log.FromContext(ctx).WithField("account_id", accountID)

	if accountID <= 0 {
		logger.WithField("reason", entity.ErrInvalidAccountID.Reason).Info("Purchase rejected")
		return entity.ErrInvalidAccountID
	}

	if err := validateTicketRequests(requests); err != nil {
		logger.WithField("reason", err.Error()).Info("Purchase rejected")
		return err
	}

	t := calculateTotals(requests)

	if err := s.paymentAuthority.MakePayment(ctx, accountID, t.Amount); err != nil {
		return err
	}
	if err := s.seatAllocator.ReserveSeat(ctx, accountID, t.ChargeableSeats); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"tickets": t.TicketCount,
		"amount":  t.Amount,
		"seats":   t.ChargeableSeats,
	}).Info("Tickets purchased")

	return nil
}

// Purchase is PurchaseTickets for a prepared instruction.
func (s Service) Purchase(ctx context.Context, instruction entity.PurchaseInstruction) error {
	return s.PurchaseTickets(ctx, instruction.AccountID, instruction.Requests...)
}
