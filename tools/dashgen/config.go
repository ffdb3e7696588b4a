package main

import "errors"

// KnownMetrics is the set of metric names exported by gpu-deals plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"gpudeals_http_request_duration_seconds": true,
	"gpudeals_http_requests_total":           true,

	// Health metrics.
	"gpudeals_healthz_up": true,
	"gpudeals_readyz_up":  true,

	// Fetch metrics.
	"gpudeals_fetch_duration_seconds":               true,
	"gpudeals_fetch_errors_total":                   true,
	"gpudeals_fetch_skipped_total":                  true,
	"gpudeals_last_fetch_attempt_timestamp_seconds": true,

	// Result metrics.
	"gpudeals_result_items": true,

	// Scheduler metrics.
	"gpudeals_scheduler_cadence_minutes":            true,
	"gpudeals_scheduler_next_run_timestamp_seconds": true,

	// Alert metrics.
	"gpudeals_alert_notifications_total": true,
	"gpudeals_alert_notify_errors_total": true,

	// Recording rules.
	"gpudeals:http_requests:rate5m": true,
	"gpudeals:http_errors:rate5m":   true,
	"gpudeals:fetch_errors:rate5m":  true,
	"gpudeals:notify_errors:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
