// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciler_events_processed_total",
		Help: "Payment events by type and outcome.",
	}, []string{"type", "outcome"})

	DuplicateDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconciler_duplicate_deliveries_total",
		Help: "Deliveries dropped by the idempotency ledger.",
	})

	SignatureRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconciler_signature_rejections_total",
		Help: "Webhook requests rejected by signature verification.",
	})

	DegradedBalanceWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconciler_degraded_balance_writes_total",
		Help: "Balance mutations that fell back to the locked read-modify-write path.",
	})

	RelayAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciler_relay_attempts_total",
		Help: "Outbox relay delivery attempts by outcome.",
	}, []string{"outcome"})

	RelayExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconciler_relay_exhausted_total",
		Help: "Outbox rows left failed after reaching the retry cap.",
	})

	ConsistencyViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconciler_consistency_violations_total",
		Help: "Domain-invariant violations (illegal escrow transitions, missing rows).",
	})

	BalanceDrift = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reconciler_balance_drift_accounts",
		Help: "Accounts whose balance diverged from the ledger sum at the last audit.",
	})
)
