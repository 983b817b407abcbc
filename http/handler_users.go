package http

import (
	"fmt"
	"net/http"
	"ticketchain/entities"

	"github.com/labstack/echo/v4"
)

func (h Handler) PostUsers(c echo.Context) error {
	var userRequest entities.User

	err := c.Bind(&userRequest)
	if err != nil {
		return err
	}
	if userRequest.WalletAddress == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "wallet_address is required")
	}

	user, err := h.userRepo.CreateOrGet(c.Request().Context(), userRequest)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h Handler) GetUserByWallet(c echo.Context) error {
	user, err := h.userRepo.ByWallet(c.Request().Context(), c.Param("wallet_address"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
