package http

import (
	"fmt"
	"net/http"
	"strconv"
	"ticketchain/db"
	"ticketchain/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mintTicketRequest struct {
	EventID     uuid.UUID `json:"event_id"`
	SeatNumber  string    `json:"seat_number"`
	TicketPrice uint64    `json:"ticket_price"`
}

type transferTicketRequest struct {
	AsaID       uint64 `json:"asa_id"`
	BuyerWallet string `json:"buyer_wallet"`
	Price       uint64 `json:"price"`
}

type transferTicketResponse struct {
	TxnID string `json:"txn_id"`
	Round uint64 `json:"round"`
}

// PostMintTicket submits the mint to the ledger and writes a provisional
// pending row. The row is superseded once the subscriber confirms the
// transaction; until then reads already show the seat as taken.
func (h Handler) PostMintTicket(c echo.Context) error {
	var request mintTicketRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}
	if request.SeatNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "seat_number is required")
	}

	ctx := c.Request().Context()

	event, err := h.eventRepo.ByID(ctx, request.EventID)
	if err != nil {
		return err
	}

	result, err := h.ledger.SubmitMintTicket(ctx, event.OrganizerWallet, request.SeatNumber, request.TicketPrice)
	if err != nil {
		return err
	}

	ticket := entities.Ticket{
		TicketID:           uuid.New(),
		EventID:            &event.EventID,
		SeatNumber:         request.SeatNumber,
		AsaID:              result.AssetID,
		TicketPrice:        request.TicketPrice,
		Status:             entities.TicketStatusPending,
		CurrentOwnerWallet: event.OrganizerWallet,
		TxnID:              &result.TxnID,
	}

	err = h.ticketRepo.CreatePending(ctx, ticket)
	if err != nil {
		return fmt.Errorf("failed to save pending ticket: %w", err)
	}

	return c.JSON(http.StatusCreated, ticket)
}

// PostTransferTicket submits the transfer to the ledger. The local store
// is not touched here, ownership moves only when the subscriber applies
// the confirmed transaction.
func (h Handler) PostTransferTicket(c echo.Context) error {
	var request transferTicketRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}
	if request.BuyerWallet == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "buyer_wallet is required")
	}

	result, err := h.ledger.SubmitTransferTicket(c.Request().Context(), request.BuyerWallet, request.AsaID, request.Price)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transferTicketResponse{
		TxnID: result.TxnID,
		Round: result.Round,
	})
}

func (h Handler) GetTickets(c echo.Context) error {
	filter := db.TicketFilter{
		Owner:  c.QueryParam("owner"),
		Status: c.QueryParam("status"),
	}
	if rawEventID := c.QueryParam("event_id"); rawEventID != "" {
		eventID, err := uuid.Parse(rawEventID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
		}
		filter.EventID = &eventID
	}

	tickets, err := h.ticketRepo.GetAll(c.Request().Context(), filter)
	if err != nil {
		return fmt.Errorf("failed getting tickets: %w", err)
	}

	return c.JSON(http.StatusOK, tickets)
}

func (h Handler) GetTicketByAsaID(c echo.Context) error {
	asaID, err := strconv.ParseUint(c.Param("asa_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid asa id")
	}

	ticket, err := h.ticketRepo.ByAsaID(c.Request().Context(), asaID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticket)
}

type voidTicketRequest struct {
	Reason string `json:"reason"`
}

func (h Handler) PutVoidTicket(c echo.Context) error {
	asaID, err := strconv.ParseUint(c.Param("asa_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid asa id")
	}

	var request voidTicketRequest
	err = c.Bind(&request)
	if err != nil {
		return err
	}

	cmd := entities.VoidTicket{
		Header: entities.NewEventHeaderWithIdempotencyKey(fmt.Sprintf("void-%d", asaID)),
		AsaID:  asaID,
		Reason: request.Reason,
	}

	if err := h.cmdBus.Send(c.Request().Context(), cmd); err != nil {
		return fmt.Errorf("failed to send void ticket command: %w", err)
	}

	return c.NoContent(http.StatusAccepted)
}
