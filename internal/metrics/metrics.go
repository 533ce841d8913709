// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messledger"

// Outcome label values for recharge metrics. Failed recharges are labelled
// with their service error kind instead.
const (
	OutcomeCommitted = "committed"
)

// RechargesTotal counts finished recharge attempts by outcome.
var RechargesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "recharge",
	Name:      "requests_total",
	Help:      "Total recharge requests by outcome.",
}, []string{"outcome"})

// RechargeDuration tracks end-to-end recharge latency including retries.
var RechargeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "recharge",
	Name:      "duration_seconds",
	Help:      "Recharge latency in seconds by outcome.",
	Buckets:   prometheus.DefBuckets,
}, []string{"outcome"})

// RechargeRetries counts unit-of-work restarts caused by conflicts.
var RechargeRetries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "recharge",
	Name:      "retries_total",
	Help:      "Total recharge attempts restarted after a conflict.",
})

// RechargeAborts counts rolled back units of work by the last stage reached.
var RechargeAborts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "recharge",
	Name:      "aborted_total",
	Help:      "Total rolled back recharges by the stage reached before the failure.",
}, []string{"stage"})

// RechargedCents sums committed recharge amounts by payment type.
var RechargedCents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "recharge",
	Name:      "amount_cents_total",
	Help:      "Total committed recharge amount in cents by payment type.",
}, []string{"payment_type"})

// HTTPRequestDuration tracks API latency by route pattern and status code.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// ObserveRecharge records one finished ProcessRecharge call.
func ObserveRecharge(outcome string, started time.Time) {
	RechargesTotal.WithLabelValues(outcome).Inc()
	RechargeDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}
