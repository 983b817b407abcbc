package http

import (
	"errors"
	"net/http"
	"ticketchain/db"
	"ticketchain/ledger"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// handleError maps domain errors to the error envelope. Ledger
// rejections keep their original message so clients see the same reason
// the program gave.
func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	kind := "persistence_error"

	var authErr ledger.AuthorizationError
	var capErr ledger.PriceCapExceededError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &authErr):
		status = http.StatusForbidden
		kind = "authorization_error"
	case errors.As(err, &capErr):
		status = http.StatusBadRequest
		kind = "price_cap_exceeded"
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
		kind = "not_found"
	case errors.Is(err, ledger.ErrLedgerUnavailable):
		status = http.StatusBadGateway
		kind = "transient_network_error"
	case errors.As(err, &httpErr):
		status = httpErr.Code
		kind = "bad_request"
		if status >= http.StatusInternalServerError {
			kind = "persistence_error"
		}
	}

	_ = c.JSON(status, errorResponse{
		ErrorKind: kind,
		Message:   err.Error(),
	})
}
