package http

import (
	"context"
	"errors"
	"net/http"

	echoHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"ticketservice/entity"
	"ticketservice/tracing"
)

type TicketPurchaser interface {
	PurchaseTickets(ctx context.Context, accountID int64, requests ...entity.TicketRequest) error
}

type PaymentsRepository interface {
	FindByAccountID(ctx context.Context, accountID int64) ([]entity.Payment, error)
}

type SeatsRepository interface {
	FindByAccountID(ctx context.Context, accountID int64) ([]entity.SeatReservation, error)
	CountReservedSeats(ctx context.Context, accountID int64) (int, error)
}

type OpsPaymentsReadModel interface {
	FindAll(ctx context.Context, receiptIssueDate string) ([]entity.OpsPayment, error)
	Get(ctx context.Context, paymentID string) (entity.OpsPayment, error)
}

type Server struct {
	addr string
	e    *echo.Echo

	purchaser        TicketPurchaser
	paymentsRepo     PaymentsRepository
	seatsRepo        SeatsRepository
	opsPaymentsModel OpsPaymentsReadModel
}

func NewServer(
	addr string,
	purchaser TicketPurchaser,
	paymentsRepo PaymentsRepository,
	seatsRepo SeatsRepository,
	opsPaymentsModel OpsPaymentsReadModel,
) *Server {
	e := echoHTTP.NewEcho()
	e.Use(otelecho.Middleware(tracing.ServiceName))

	server := &Server{
		addr:             addr,
		e:                e,
		purchaser:        purchaser,
		paymentsRepo:     paymentsRepo,
		seatsRepo:        seatsRepo,
		opsPaymentsModel: opsPaymentsModel,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/ticket-purchases", server.PostTicketPurchases)
	e.GET("/accounts/:account_id/payments", server.GetAccountPayments)
	e.GET("/accounts/:account_id/seat-reservations", server.GetAccountSeatReservations)

	e.GET("/ops/payments", server.GetOpsPayments)
	e.GET("/ops/payments/:id", server.GetOpsPayment)

	return server
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.e.Shutdown(context.Background()); err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()

	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")

	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
