package handlers_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpudeals/gpu-deals/internal/alerts"
	"github.com/gpudeals/gpu-deals/internal/api/handlers"
	"github.com/gpudeals/gpu-deals/internal/store"
)

func newTestAlerts(t *testing.T) *alerts.Service {
	t.Helper()
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	svc := alerts.NewService(fs, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestAlertsHandler_List(t *testing.T) {
	t.Parallel()

	h := handlers.NewAlertsHandler(newTestAlerts(t))

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, h)

	resp := api.Get("/api/v1/alerts")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"brand":"RTX 4090"`)
	assert.Contains(t, body, `"brand":"RX 7900 XTX"`)
	assert.Contains(t, body, `"endDateTime":"23:59"`)
}

func TestAlertsHandler_Put(t *testing.T) {
	t.Parallel()

	svc := newTestAlerts(t)
	h := handlers.NewAlertsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, h)

	resp := api.Put("/api/v1/alerts", map[string]any{
		"alerts": []map[string]any{
			{"brand": "RTX 5090", "price": 2200, "endDateTime": "08:30"},
			// ISO form is accepted and normalized to HH:mm.
			{"brand": "Arc B580", "price": 250, "endDateTime": "2026-08-28T17:45:00Z"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"endDateTime":"08:30"`)
	assert.Contains(t, body, `"endDateTime":"17:45"`)

	got := svc.List()
	require.Len(t, got, 2)
	assert.Equal(t, "RTX 5090", got[0].Brand)
	assert.Equal(t, 17, got[1].EndDateTime.Hour())
}

func TestAlertsHandler_Put_EmptyListAllowed(t *testing.T) {
	t.Parallel()

	svc := newTestAlerts(t)
	h := handlers.NewAlertsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, h)

	resp := api.Put("/api/v1/alerts", map[string]any{"alerts": []map[string]any{}})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, svc.List())
}

func TestAlertsHandler_Put_BadTime(t *testing.T) {
	t.Parallel()

	svc := newTestAlerts(t)
	h := handlers.NewAlertsHandler(svc)

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, h)

	resp := api.Put("/api/v1/alerts", map[string]any{
		"alerts": []map[string]any{
			{"brand": "RTX 5090", "price": 2200, "endDateTime": "late evening"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	// The existing list is untouched on failure.
	assert.Len(t, svc.List(), 2)
}
