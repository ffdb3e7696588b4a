package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newCR("gpu-deals-recording-rules", RuleGroup{
		Name: "gpu-deals-recording",
		Rules: []Rule{
			{
				Record: "gpudeals:http_requests:rate5m",
				Expr:   `sum(rate(gpudeals_http_requests_total[5m]))`,
			},
			{
				Record: "gpudeals:http_errors:rate5m",
				Expr:   `sum(rate(gpudeals_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "gpudeals:fetch_errors:rate5m",
				Expr:   `sum(rate(gpudeals_fetch_errors_total[5m]))`,
			},
			{
				Record: "gpudeals:notify_errors:rate5m",
				Expr:   `rate(gpudeals_alert_notify_errors_total[5m])`,
			},
		},
	})
}
