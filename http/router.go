package http

import (
	"net/http"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	eventBus *cqrs.EventBus,
	cmdBus *cqrs.CommandBus,
	chainLedger Ledger,
	eventRepo EventRepository,
	ticketRepo TicketRepository,
	transferRepo TransferRepository,
	userRepo UserRepository,
	statsRepo EventStatsRepository,
) *echo.Echo {
	e := libHttp.NewEcho()
	e.Use(otelecho.Middleware("ticketchain"))
	e.HTTPErrorHandler = handleError

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		eventBus:     eventBus,
		cmdBus:       cmdBus,
		ledger:       chainLedger,
		eventRepo:    eventRepo,
		ticketRepo:   ticketRepo,
		transferRepo: transferRepo,
		userRepo:     userRepo,
		statsRepo:    statsRepo,
	}

	e.POST("/events", handler.PostEvents)
	e.GET("/events", handler.GetEvents)
	e.GET("/events/:event_id", handler.GetEventByID)
	e.GET("/events/:event_id/stats", handler.GetEventStats)

	e.POST("/tickets/mint", handler.PostMintTicket)
	e.POST("/tickets/transfer", handler.PostTransferTicket)
	e.GET("/tickets", handler.GetTickets)
	e.GET("/tickets/asa/:asa_id", handler.GetTicketByAsaID)
	e.PUT("/tickets/:asa_id/void", handler.PutVoidTicket)

	e.GET("/transfers", handler.GetTransfers)

	e.POST("/users", handler.PostUsers)
	e.GET("/users/:wallet_address", handler.GetUserByWallet)

	e.GET("/chain/state", handler.GetChainState)

	return e
}
