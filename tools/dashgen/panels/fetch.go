package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// FetchDuration returns a timeseries panel showing p50 and p95 pricing API
// fetch durations.
func FetchDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fetch Duration").
		Description("Pricing API fetch duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, rate(gpudeals_fetch_duration_seconds_bucket{job="gpu-deals"}[5m]))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, rate(gpudeals_fetch_duration_seconds_bucket{job="gpu-deals"}[5m]))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FetchErrors returns a timeseries panel showing fetch failures broken down
// by error kind.
func FetchErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fetch Errors").
		Description("Failed pricing API fetches per second, by kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`rate(gpudeals_fetch_errors_total{job="gpu-deals"}[5m])`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FetchSkipped returns a timeseries panel showing coalesced fetch ticks.
func FetchSkipped() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Skipped Fetches").
		Description("Fetch ticks skipped because a fetch was already running").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`increase(gpudeals_fetch_skipped_total{job="gpu-deals"}[5m])`,
			"skipped", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FetchStaleness returns a timeseries panel showing seconds since the last
// fetch attempt.
func FetchStaleness() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fetch Staleness").
		Description("Seconds since the most recent fetch attempt").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`time() - gpudeals_last_fetch_attempt_timestamp_seconds{job="gpu-deals"}`,
			"staleness", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1800, 3900)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
