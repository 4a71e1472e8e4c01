package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ticketservice/entity"
)

func (s *Server) GetOpsPayments(c echo.Context) error {
	receiptIssueDate := c.QueryParam("receipt_issue_date")
	if receiptIssueDate != "" {
		if _, err := time.Parse(time.DateOnly, receiptIssueDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid receipt_issue_date format, expected YYYY-MM-DD")
		}
	}

	payments, err := s.opsPaymentsModel.FindAll(c.Request().Context(), receiptIssueDate)
	if err != nil {
		return fmt.Errorf("could not get payments: %w", err)
	}

	return c.JSON(http.StatusOK, payments)
}

func (s *Server) GetOpsPayment(c echo.Context) error {
	payment, err := s.opsPaymentsModel.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, entity.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "payment not found")
	}
	if err != nil {
		return fmt.Errorf("could not get payment: %w", err)
	}

	return c.JSON(http.StatusOK, payment)
}
