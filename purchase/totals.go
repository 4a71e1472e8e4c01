package purchase

import (
	"github.com/samber/lo"

	"ticketservice/entity"
)

type totals struct {
	TicketCount     int
	ChargeableSeats int
	Amount          int
}

func calculateTotals(requests []entity.TicketRequest) totals {
	return totals{
		TicketCount: lo.SumBy(requests, entity.TicketRequest.Count),
		ChargeableSeats: lo.SumBy(requests, func(r entity.TicketRequest) int {
			if !r.Kind().Chargeable() {
				return 0
			}
			return r.Count()
		}),
		Amount: lo.SumBy(requests, func(r entity.TicketRequest) int {
			return r.Kind().UnitPrice() * r.Count()
		}),
	}
}
