package gateway

import (
	"context"
	"fmt"

	"ticketservice/entity"
)

type SeatAllocator struct {
	commands CommandSender
}

func NewSeatAllocator(commands CommandSender) SeatAllocator {
	if commands == nil {
		panic("missing commands")
	}

	return SeatAllocator{commands: commands}
}

func (s SeatAllocator) ReserveSeat(ctx context.Context, accountID int64, totalSeatsToAllocate int) error {
	err := s.commands.Send(ctx, &entity.ReserveSeats{
		Header:    entity.NewEventHeaderWithIdempotencyKey(commandIdempotencyKey(ctx, "seats")),
		AccountID: accountID,
		Seats:     totalSeatsToAllocate,
	})
	if err != nil {
		return fmt.Errorf("could not send ReserveSeats command: %w", err)
	}

	return nil
}
