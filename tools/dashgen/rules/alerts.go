package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// gpu-deals operational monitoring.
func AlertRules() PrometheusRule {
	return newCR("gpu-deals-alerts", RuleGroup{
		Name: "gpu-deals-alerts",
		Rules: []Rule{
			{
				Alert: "GpuDealsDown",
				Expr:  `absent(up{job="gpu-deals"})`,
				For:   "2m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "GPU Deals is down",
					"description": "The gpu-deals job has been absent for more than 2 minutes.",
				},
			},
			{
				Alert: "GpuDealsReadinessDown",
				Expr:  `gpudeals_readyz_up == 0`,
				For:   "2m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "GPU Deals readiness check is failing",
					"description": "The readiness probe has been reporting not-ready for more than 2 minutes. The settings store is likely unreachable.",
				},
			},
			{
				Alert: "GpuDealsHighErrorRate",
				Expr:  `gpudeals:http_errors:rate5m / gpudeals:http_requests:rate5m > 0.05`,
				For:   "5m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "High HTTP error rate on GPU Deals",
					"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
				},
			},
			{
				Alert: "GpuDealsFetchErrors",
				Expr:  `gpudeals:fetch_errors:rate5m > 0`,
				For:   "15m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Pricing API fetches are failing",
					"description": "Fetch cycles have been failing for more than 15 minutes. Results are stale until a fetch succeeds.",
				},
			},
			{
				Alert: "GpuDealsFetchStalled",
				Expr:  `time() - gpudeals_last_fetch_attempt_timestamp_seconds > 3900`,
				For:   "0m",
				Labels: map[string]string{
					"severity": "critical",
				},
				Annotations: map[string]string{
					"summary":     "No fetch attempt in over 65 minutes",
					"description": "The scheduler has not attempted a fetch for longer than the maximum cadence allows. The scheduler is likely wedged.",
				},
			},
			{
				Alert: "GpuDealsNotificationFailures",
				Expr:  `increase(gpudeals_alert_notify_errors_total[5m]) > 0`,
				For:   "1m",
				Labels: map[string]string{
					"severity": "warning",
				},
				Annotations: map[string]string{
					"summary":     "Notification delivery failures detected",
					"description": "One or more price alert notifications (Discord webhooks) have failed to send.",
				},
			},
		},
	})
}
