package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"

	"ticketservice/entity"
	"ticketservice/metrics"
)

// invalidTicketEntryReason labels rejections of ticket entries that could not be parsed.
const invalidTicketEntryReason = "Invalid ticket entry"

type postTicketPurchaseRequest struct {
	AccountID int64                `json:"account_id"`
	Tickets   []ticketRequestEntry `json:"tickets"`
}

type ticketRequestEntry struct {
	TicketType string `json:"ticket_type"`
	Count      int    `json:"count"`
}

func (r postTicketPurchaseRequest) ticketRequests() ([]entity.TicketRequest, error) {
	requests := make([]entity.TicketRequest, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		kind, err := entity.ParseTicketKind(t.TicketType)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, t.TicketType)
		}

		request, err := entity.NewTicketRequest(kind, t.Count)
		if err != nil {
			return nil, err
		}

		requests = append(requests, request)
	}

	return requests, nil
}

func (s *Server) PostTicketPurchases(c echo.Context) error {
	var request postTicketPurchaseRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ticketRequests, err := request.ticketRequests()
	if err != nil {
		metrics.PurchasesRejected.WithLabelValues(invalidTicketEntryReason).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if idempotencyKey := c.Request().Header.Get("Idempotency-Key"); idempotencyKey != "" {
		ctx = entity.ContextWithIdempotencyKey(ctx, idempotencyKey)
	}

	err = s.purchaser.PurchaseTickets(ctx, request.AccountID, ticketRequests...)

	var rejected entity.PurchaseRejectedError
	if errors.As(err, &rejected) {
		metrics.PurchasesRejected.WithLabelValues(rejected.Reason).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, rejected.Reason)
	}
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("Ticket purchase failed")
		return fmt.Errorf("could not purchase tickets: %w", err)
	}

	metrics.PurchasesAccepted.Inc()

	return c.NoContent(http.StatusAccepted)
}
