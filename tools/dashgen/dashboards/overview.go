// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/gpudeals/gpu-deals/tools/dashgen/panels"
)

// BuildOverview constructs the GPU Deals Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("GPU Deals Overview").
		Uid("gpu-deals-overview").
		Tags([]string{"gpu-deals"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.ResultItemsStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Fetch.
	b.WithRow(dashboard.NewRowBuilder("Fetch").
		WithPanel(panels.FetchDuration()).
		WithPanel(panels.FetchErrors()).
		WithPanel(panels.FetchSkipped()).
		WithPanel(panels.FetchStaleness()))

	// Row 4: Scheduler.
	b.WithRow(dashboard.NewRowBuilder("Scheduler").
		WithPanel(panels.CadenceStat()).
		WithPanel(panels.NextRunStat()))

	// Row 5: Alerts.
	b.WithRow(dashboard.NewRowBuilder("Alerts").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
