package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// CadenceStat returns a stat panel showing the current refresh cadence.
func CadenceStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Cadence").
		Description("Current refresh cadence in minutes").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`gpudeals_scheduler_cadence_minutes`, "", "A")).
		Unit("m").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

// NextRunStat returns a stat panel counting down to the next scheduled fetch.
func NextRunStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Fetch In").
		Description("Seconds until the next scheduled fetch").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`gpudeals_scheduler_next_run_timestamp_seconds - time()`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
