package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gpudeals/gpu-deals/internal/engine"
	"github.com/gpudeals/gpu-deals/internal/settings"
)

// NextRunner reports the next scheduled fetch time.
type NextRunner interface {
	NextRun() time.Time
}

// StatusHandler reports fetch and scheduler status.
type StatusHandler struct {
	state     *engine.State
	settings  *settings.Manager
	scheduler NextRunner
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(
	state *engine.State,
	mgr *settings.Manager,
	sched NextRunner,
) *StatusHandler {
	return &StatusHandler{state: state, settings: mgr, scheduler: sched}
}

// StatusOutput is the response for the status endpoint.
type StatusOutput struct {
	Body struct {
		Items          int        `json:"items"                  doc:"Number of GPU models in the current snapshot"`
		CadenceMinutes int        `json:"cadenceMinutes"         doc:"Refresh cadence in minutes"`
		APIURL         string     `json:"apiUrl"                 doc:"Configured pricing endpoint"`
		LastAttempt    *time.Time `json:"lastAttempt,omitempty"  doc:"Time of the most recent fetch attempt"`
		LastError      string     `json:"lastError,omitempty"    doc:"Failure message of the most recent fetch"`
		NextRun        *time.Time `json:"nextRun,omitempty"      doc:"Time of the next scheduled fetch"`
	}
}

// Status returns the current fetch and scheduler state.
func (h *StatusHandler) Status(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	resp := &StatusOutput{}
	resp.Body.Items = h.state.Len()
	resp.Body.CadenceMinutes = h.settings.Cadence()
	resp.Body.APIURL = h.settings.APIURL()
	resp.Body.LastError = h.state.LastError()

	if last := h.state.LastAttempt(); !last.IsZero() {
		resp.Body.LastAttempt = &last
	}
	if h.scheduler != nil {
		if next := h.scheduler.NextRun(); !next.IsZero() {
			resp.Body.NextRun = &next
		}
	}
	return resp, nil
}

// RegisterStatusRoutes registers the status endpoint with the Huma API.
func RegisterStatusRoutes(api huma.API, h *StatusHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/status",
		Summary:     "Get service status",
		Description: "Returns snapshot size, cadence, endpoint, and fetch timing information.",
		Tags:        []string{"status"},
	}, h.Status)
}
