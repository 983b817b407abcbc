package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h Handler) GetTransfers(c echo.Context) error {
	var ticketID *uuid.UUID
	if rawTicketID := c.QueryParam("ticket_id"); rawTicketID != "" {
		parsed, err := uuid.Parse(rawTicketID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
		}
		ticketID = &parsed
	}

	transfers, err := h.transferRepo.GetAll(c.Request().Context(), ticketID)
	if err != nil {
		return fmt.Errorf("failed getting transfers: %w", err)
	}

	return c.JSON(http.StatusOK, transfers)
}
