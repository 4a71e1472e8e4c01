package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ticketservice/entity"
)

type seatReservationsResponse struct {
	Reservations []entity.SeatReservation `json:"reservations"`
	TotalSeats   int                      `json:"total_seats"`
}

func accountIDParam(c echo.Context) (int64, error) {
	accountID, err := strconv.ParseInt(c.Param("account_id"), 10, 64)
	if err != nil || accountID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, entity.ErrInvalidAccountID.Reason)
	}

	return accountID, nil
}

func (s *Server) GetAccountPayments(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return err
	}

	payments, err := s.paymentsRepo.FindByAccountID(c.Request().Context(), accountID)
	if err != nil {
		return fmt.Errorf("could not get payments: %w", err)
	}

	return c.JSON(http.StatusOK, payments)
}

func (s *Server) GetAccountSeatReservations(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return err
	}

	reservations, err := s.seatsRepo.FindByAccountID(c.Request().Context(), accountID)
	if err != nil {
		return fmt.Errorf("could not get seat reservations: %w", err)
	}

	totalSeats, err := s.seatsRepo.CountReservedSeats(c.Request().Context(), accountID)
	if err != nil {
		return fmt.Errorf("could not count reserved seats: %w", err)
	}

	return c.JSON(http.StatusOK, seatReservationsResponse{
		Reservations: reservations,
		TotalSeats:   totalSeats,
	})
}
