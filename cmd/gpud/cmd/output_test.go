package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/gpudeals/gpu-deals/internal/api/client"
)

func TestPrintStatusDetail_NoAttemptPrintsNever(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printStatusDetail(&buf, &apiclient.Status{
		Items:          0,
		CadenceMinutes: 15,
		APIURL:         "https://api.gpudeals.net/",
	}))

	out := buf.String()
	assert.Contains(t, out, "Last Attempt:")
	assert.Contains(t, out, "Never")
	assert.NotContains(t, out, "Last Error:")
}

func TestPrintStatusDetail_WithAttempt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printStatusDetail(&buf, &apiclient.Status{
		Items:          4,
		CadenceMinutes: 5,
		APIURL:         "https://api.gpudeals.net/",
		LastAttempt:    "2026-03-14T12:00:00Z",
		LastError:      "decoding results: unexpected EOF",
		NextRun:        "2026-03-14T12:05:00Z",
	}))

	out := buf.String()
	assert.Contains(t, out, "2026-03-14T12:00:00Z")
	assert.NotContains(t, out, "Never")
	assert.Contains(t, out, "every 5 minutes")
	assert.Contains(t, out, "decoding results: unexpected EOF")
	assert.Contains(t, out, "2026-03-14T12:05:00Z")
}

func TestPrintResultsTable_AbsentFieldsRenderDash(t *testing.T) {
	t.Parallel()

	lowest := 999.0
	value := 35

	var buf bytes.Buffer
	require.NoError(t, printResultsTable(&buf, []apiclient.Result{
		{ID: "rtx-4090", Vendor: "NVIDIA", Benchmark: 35000,
			LowestPrice: &lowest, CalculatedValue: &value},
		{ID: "rx-7900-xtx", Vendor: "AMD", Benchmark: 29000},
	}))

	out := buf.String()
	assert.Contains(t, out, "$999.00")
	assert.Contains(t, out, "35")
	assert.Contains(t, out, "-")
}

func TestPrintAlertsTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printAlertsTable(&buf, []apiclient.Alert{
		{Brand: "RTX 4090", Price: 1500, EndDateTime: "23:59"},
	}))

	out := buf.String()
	assert.Contains(t, out, "RTX 4090")
	assert.Contains(t, out, "$1500")
	assert.Contains(t, out, "23:59")
}
