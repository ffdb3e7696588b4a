// Package metrics defines Prometheus metrics for gpu-deals.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gpudeals"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Fetch metrics.
var (
	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of pricing API fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	FetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed pricing API fetches.",
	}, []string{"kind"})

	FetchSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_skipped_total",
		Help:      "Total number of fetch ticks skipped because a fetch was already running.",
	})

	LastFetchAttempt = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_fetch_attempt_timestamp_seconds",
		Help:      "Unix time of the most recent fetch attempt.",
	})
)

// Result metrics.
var (
	ResultItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "result_items",
		Help:      "Number of GPU models in the current result set.",
	})
)

// Alert metrics.
var (
	AlertNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_notifications_total",
		Help:      "Total number of price alert notifications sent.",
	})

	AlertNotifyErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_notify_errors_total",
		Help:      "Total number of failed alert notification deliveries.",
	})
)

// Scheduler metrics.
var (
	SchedulerCadenceMinutes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_cadence_minutes",
		Help:      "Current refresh cadence in minutes.",
	})

	SchedulerNextRun = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_run_timestamp_seconds",
		Help:      "Unix time of the next scheduled fetch.",
	})
)
