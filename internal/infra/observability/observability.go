// Package observability exposes Prometheus metrics for the daemon.
// Counters only — a single-household tracker needs no tracing backend,
// but the /metrics endpoint makes a long-running install inspectable.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Counters ───────────────────────────────────────────────────────────────

var (
	// UnlockAttempts counts license gate submissions by outcome:
	// granted, invalid_key, key_bound.
	UnlockAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkdiary_unlock_attempts_total",
		Help: "License unlock attempts by outcome.",
	}, []string{"outcome"})

	// LedgerWrites counts persisted day-entry updates by kind (not, extra).
	LedgerWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkdiary_ledger_writes_total",
		Help: "Calendar ledger writes by exception kind.",
	}, []string{"kind"})

	// BillsRendered counts generated bills by entry point (month, range).
	BillsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milkdiary_bills_rendered_total",
		Help: "Bills rendered by entry point.",
	}, []string{"entry"})
)
