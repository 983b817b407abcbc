package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

type CreateEventRequest struct {
	Name            string `json:"name"`
	TotalSeats      int    `json:"total_seats"`
	MaxResalePrice  uint64 `json:"max_resale_price"`
	OrganizerWallet string `json:"organizer_wallet"`
}

type EventResponse struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
}

type MintTicketRequest struct {
	EventID     string `json:"event_id"`
	SeatNumber  string `json:"seat_number"`
	TicketPrice uint64 `json:"ticket_price"`
}

type TicketResponse struct {
	TicketID           string `json:"ticket_id"`
	AsaID              uint64 `json:"asa_id"`
	SeatNumber         string `json:"seat_number"`
	TicketPrice        uint64 `json:"ticket_price"`
	Status             string `json:"status"`
	CurrentOwnerWallet string `json:"current_owner_wallet"`
}

type TransferTicketRequest struct {
	AsaID       uint64 `json:"asa_id"`
	BuyerWallet string `json:"buyer_wallet"`
	Price       uint64 `json:"price"`
}

type ErrorResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

type EventStatsResponse struct {
	TicketsMinted      int    `json:"tickets_minted"`
	TransfersConfirmed int    `json:"transfers_confirmed"`
	ResaleVolume       uint64 `json:"resale_volume"`
	TicketsVoided      int    `json:"tickets_voided"`
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.Eventually(
		t,
		func() bool {
			resp, err := http.Get(baseURL + "/health")
			if err != nil {
				return false
			}
			defer resp.Body.Close()

			return resp.StatusCode == http.StatusOK
		},
		time.Second*10,
		time.Millisecond*50,
	)
}

func doJSONRequest(t *testing.T, method string, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(payload)
	}

	httpReq, err := http.NewRequest(method, baseURL+path, buf)
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, respBody
}

func getTicketByAsaID(t *testing.T, asaID uint64) (int, TicketResponse) {
	t.Helper()

	resp, body := doJSONRequest(t, http.MethodGet, "/tickets/asa/"+jsonNumber(asaID), nil)

	var ticket TicketResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &ticket))
	}

	return resp.StatusCode, ticket
}

func jsonNumber(v uint64) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
