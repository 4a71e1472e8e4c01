package command

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"ticketservice/entity"
)

func (h Handler) ReserveSeatsHandler() cqrs.CommandHandler {
	return cqrs.NewCommandHandler(
		"ReserveSeatsHandler",
		func(ctx context.Context, cmd *entity.ReserveSeats) error {
			log.FromContext(ctx).Infof("Reserving %d seats for account %d", cmd.Seats, cmd.AccountID)

			return h.seatsRepo.Store(ctx, entity.SeatReservation{
				ReservationID:  uuid.NewString(),
				AccountID:      cmd.AccountID,
				Seats:          cmd.Seats,
				IdempotencyKey: cmd.Header.IdempotencyKey,
				ReservedAt:     time.Now().UTC(),
			})
		},
	)
}
