package subscriber

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_subscriber_passes_total",
		Help: "Reconciliation passes started.",
	})

	roundsAppliedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_subscriber_rounds_applied_total",
		Help: "Ledger rounds fully applied to the local store.",
	})

	transactionsAppliedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_subscriber_transactions_applied_total",
		Help: "Committed transactions applied to the local store.",
	})

	pollFailuresCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketchain_subscriber_poll_failures_total",
		Help: "Reconciliation passes that ended with an error.",
	})

	cursorPositionGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ticketchain_subscriber_cursor_position",
		Help: "Highest fully reconciled round.",
	})
)
