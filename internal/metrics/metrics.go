package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chatline"

var (
	// UsageRecordsTotal counts messages recorded against the ledger.
	UsageRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "usage",
		Name:      "records_total",
		Help:      "Total messages recorded in the usage ledger.",
	})

	// UsagePurgedTotal counts usage counters dropped by the retention sweep.
	UsagePurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "usage",
		Name:      "purged_total",
		Help:      "Total usage counters removed by retention purging.",
	})

	// EntitlementDecisionsTotal counts policy decisions by check and outcome.
	EntitlementDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "entitlement",
		Name:      "decisions_total",
		Help:      "Entitlement decisions by check and outcome.",
	}, []string{"check", "outcome"})

	// SessionsTotal counts session lifecycle events.
	SessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "events_total",
		Help:      "Session events by kind (created, validated, rejected, terminated, purged).",
	}, []string{"event"})

	// TierTransitionsTotal counts tier changes by source and target tier.
	TierTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "account",
		Name:      "tier_transitions_total",
		Help:      "Account tier transitions by from and to tier.",
	}, []string{"from", "to"})

	// HTTPRequestsTotal counts API requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP API requests by route and status code.",
	}, []string{"route", "status"})

	// HTTPRequestDuration tracks API latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP API request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
)

func Outcome(allowed bool) string {
	if allowed {
		return OutcomeAllowed
	}
	return OutcomeDenied
}
