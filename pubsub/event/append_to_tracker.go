package event

import (
	"context"
	"strconv"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"ticketservice/entity"
)

const (
	PaymentsTakenSheet = "payments-taken"
	SeatsReservedSheet = "seats-reserved"
)

func (h Handler) AppendPaymentToTrackerHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AppendPaymentToTrackerHandler",
		func(ctx context.Context, event *entity.PaymentTaken_v1) error {
			log.FromContext(ctx).Info("Appending payment to the tracker")

			return h.spreadsheetsService.AppendRow(
				ctx,
				PaymentsTakenSheet,
				[]string{
					event.PaymentID,
					strconv.FormatInt(event.AccountID, 10),
					strconv.Itoa(event.Amount),
					h.currency,
				},
			)
		},
	)
}

func (h Handler) AppendSeatsToTrackerHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AppendSeatsToTrackerHandler",
		func(ctx context.Context, event *entity.SeatsReserved_v1) error {
			log.FromContext(ctx).Info("Appending seat reservation to the tracker")

			return h.spreadsheetsService.AppendRow(
				ctx,
				SeatsReservedSheet,
				[]string{
					event.ReservationID,
					strconv.FormatInt(event.AccountID, 10),
					strconv.Itoa(event.Seats),
				},
			)
		},
	)
}
