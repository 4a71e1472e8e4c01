package purchase

import (
	"github.com/samber/lo"

	"ticketservice/entity"
)

func validateTicketRequests(requests []entity.TicketRequest) error {
	for _, r := range requests {
		if !r.Valid() {
			return entity.ErrInvalidTicketRequest
		}
	}

	// stop once the limit is passed, so huge counts cannot wrap the total
	totalTickets := 0
	for _, r := range requests {
		if r.Count() > entity.MaxTicketsPerPurchase-totalTickets {
			return entity.ErrTooManyTickets
		}
		totalTickets += r.Count()
	}

	// also covers an empty request list
	hasAdultTicket := lo.ContainsBy(requests, func(r entity.TicketRequest) bool {
		return r.Kind() == entity.TicketKindAdult
	})
	if !hasAdultTicket {
		return entity.ErrAdultTicketRequired
	}

	return nil
}
