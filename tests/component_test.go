package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"ticketchain/db"
	"ticketchain/entities"
	"ticketchain/ledger"
	"ticketchain/service"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const organizerWallet = "ORGANIZER-WALLET"

func TestComponent(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer rdb.Close()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	require.NoError(t, err)
	defer conn.Close()
	conn.MigrateSchema()

	chainLedger := ledger.NewInMemoryLedger(1, organizerWallet)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		svc := service.New(
			rdb,
			chainLedger,
			1,
			50*time.Millisecond,
			conn,
		)
		assert.NoError(t, svc.Run(ctx))
	}()
	waitForHttpServer(t)

	// organizer creates an event
	resp, body := doJSONRequest(t, http.MethodPost, "/events", CreateEventRequest{
		Name:            "Final Tour",
		TotalSeats:      100,
		MaxResalePrice:  100,
		OrganizerWallet: organizerWallet,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event EventResponse
	require.NoError(t, json.Unmarshal(body, &event))
	require.Equal(t, "active", event.Status)

	// mint returns a provisional pending ticket
	resp, body = doJSONRequest(t, http.MethodPost, "/tickets/mint", MintTicketRequest{
		EventID:     event.EventID,
		SeatNumber:  "A-12",
		TicketPrice: 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var pending TicketResponse
	require.NoError(t, json.Unmarshal(body, &pending))
	require.Equal(t, string(entities.TicketStatusPending), pending.Status)
	require.NotZero(t, pending.AsaID)

	// the subscriber confirms the mint
	assertTicketStatus(t, pending.AsaID, entities.TicketStatusMinted, organizerWallet)

	// the program's cap is the last mint price (100), resale above it is
	// rejected by the ledger and nothing changes locally
	resp, body = doJSONRequest(t, http.MethodPost, "/tickets/transfer", TransferTicketRequest{
		AsaID:       pending.AsaID,
		BuyerWallet: "BUYER-1",
		Price:       101,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	require.Equal(t, "price_cap_exceeded", errResp.ErrorKind)

	status, ticket := getTicketByAsaID(t, pending.AsaID)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, organizerWallet, ticket.CurrentOwnerWallet)

	// resale at the cap goes through
	resp, _ = doJSONRequest(t, http.MethodPost, "/tickets/transfer", TransferTicketRequest{
		AsaID:       pending.AsaID,
		BuyerWallet: "BUYER-1",
		Price:       100,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assertTicketStatus(t, pending.AsaID, entities.TicketStatusTransferred, "BUYER-1")

	// the stats read model catches up from the published events
	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get(baseURL + "/events/" + event.EventID + "/stats")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			if !assert.Equal(t, http.StatusOK, resp.StatusCode) {
				return
			}

			var stats EventStatsResponse
			if !assert.NoError(t, json.NewDecoder(resp.Body).Decode(&stats)) {
				return
			}

			assert.Equal(t, 1, stats.TicketsMinted)
			assert.Equal(t, 1, stats.TransfersConfirmed)
			assert.EqualValues(t, 100, stats.ResaleVolume)
		},
		10*time.Second,
		100*time.Millisecond,
	)

	// chain state reflects the cap and sync progress
	resp, body = doJSONRequest(t, http.MethodGet, "/chain/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state struct {
		MaxResalePrice uint64 `json:"max_resale_price"`
		LastRound      uint64 `json:"last_round"`
	}
	require.NoError(t, json.Unmarshal(body, &state))
	require.EqualValues(t, 100, state.MaxResalePrice)
	require.NotZero(t, state.LastRound)
}

func assertTicketStatus(t *testing.T, asaID uint64, want entities.TicketStatus, wantOwner string) {
	t.Helper()

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get(baseURL + "/tickets/asa/" + jsonNumber(asaID))
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			if !assert.Equal(t, http.StatusOK, resp.StatusCode) {
				return
			}

			var ticket TicketResponse
			if !assert.NoError(t, json.NewDecoder(resp.Body).Decode(&ticket)) {
				return
			}

			assert.Equal(t, string(want), ticket.Status)
			assert.Equal(t, wantOwner, ticket.CurrentOwnerWallet)
		},
		10*time.Second,
		100*time.Millisecond,
	)
}
