package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h Handler) GetChainState(c echo.Context) error {
	state, err := h.ledger.GlobalState(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed reading chain state: %w", err)
	}

	return c.JSON(http.StatusOK, state)
}
