package http

import (
	"fmt"
	"net/http"
	"ticketchain/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h Handler) PostEvents(c echo.Context) error {
	var eventRequest entities.Event

	err := c.Bind(&eventRequest)
	if err != nil {
		return err
	}
	if eventRequest.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if eventRequest.OrganizerWallet == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "organizer_wallet is required")
	}

	event, err := h.eventRepo.Create(c.Request().Context(), eventRequest)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return c.JSON(http.StatusCreated, event)
}

func (h Handler) GetEvents(c echo.Context) error {
	events, err := h.eventRepo.GetAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed getting events: %w", err)
	}

	return c.JSON(http.StatusOK, events)
}

func (h Handler) GetEventByID(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.eventRepo.ByID(c.Request().Context(), eventID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, event)
}

func (h Handler) GetEventStats(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	stats, err := h.statsRepo.ByEventID(c.Request().Context(), eventID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
