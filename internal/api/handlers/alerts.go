package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gpudeals/gpu-deals/internal/alerts"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// AlertView is the API representation of one price alert. End times are
// always rendered as "HH:mm".
type AlertView struct {
	ID          string `json:"id,omitempty" doc:"Local alert identifier, not persisted"`
	Brand       string `json:"brand"        doc:"GPU model the alert watches"`
	Price       int    `json:"price"        doc:"Price threshold in whole dollars"`
	EndDateTime string `json:"endDateTime"  doc:"Daily cutoff time as HH:mm"`
}

// AlertsHandler handles alert list endpoints.
type AlertsHandler struct {
	alerts *alerts.Service
}

// NewAlertsHandler creates a new AlertsHandler.
func NewAlertsHandler(svc *alerts.Service) *AlertsHandler {
	return &AlertsHandler{alerts: svc}
}

// ListAlertsOutput is the response for listing alerts.
type ListAlertsOutput struct {
	Body struct {
		Alerts []AlertView `json:"alerts"`
	}
}

// ListAlerts returns the current alert list.
func (h *AlertsHandler) ListAlerts(_ context.Context, _ *struct{}) (*ListAlertsOutput, error) {
	current := h.alerts.List()

	views := make([]AlertView, 0, len(current))
	for _, a := range current {
		views = append(views, AlertView{
			ID:          a.ID,
			Brand:       a.Brand,
			Price:       a.Price,
			EndDateTime: alerts.FormatEndTime(a.EndDateTime),
		})
	}

	resp := &ListAlertsOutput{}
	resp.Body.Alerts = views
	return resp, nil
}

// PutAlertsInput is the input for replacing the alert list.
type PutAlertsInput struct {
	Body struct {
		Alerts []struct {
			Brand       string `json:"brand"       doc:"GPU model the alert watches" minLength:"1"`
			Price       int    `json:"price"       doc:"Price threshold in whole dollars" minimum:"0"`
			EndDateTime string `json:"endDateTime" doc:"Daily cutoff as HH:mm or an ISO timestamp" minLength:"1"`
		} `json:"alerts"`
	}
}

// PutAlerts replaces the whole alert list. There are no partial updates;
// clients send the complete desired list.
func (h *AlertsHandler) PutAlerts(
	ctx context.Context,
	input *PutAlertsInput,
) (*ListAlertsOutput, error) {
	next := make([]domain.Alert, 0, len(input.Body.Alerts))
	for _, in := range input.Body.Alerts {
		end, err := alerts.ParseEndTime(in.EndDateTime)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid endDateTime: " + in.EndDateTime)
		}
		next = append(next, domain.Alert{
			Brand:       in.Brand,
			Price:       in.Price,
			EndDateTime: end,
		})
	}

	if err := h.alerts.Replace(ctx, next); err != nil {
		return nil, huma.Error500InternalServerError("saving alerts failed: " + err.Error())
	}

	return h.ListAlerts(ctx, nil)
}

// RegisterAlertRoutes registers alert endpoints with the Huma API.
func RegisterAlertRoutes(api huma.API, h *AlertsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-alerts",
		Method:      http.MethodGet,
		Path:        "/api/v1/alerts",
		Summary:     "List alerts",
		Tags:        []string{"alerts"},
	}, h.ListAlerts)

	huma.Register(api, huma.Operation{
		OperationID: "put-alerts",
		Method:      http.MethodPut,
		Path:        "/api/v1/alerts",
		Summary:     "Replace the alert list",
		Description: "Replaces the whole alert list. End times accept HH:mm or ISO timestamps " +
			"and are stored as a daily HH:mm cutoff.",
		Tags:   []string{"alerts"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.PutAlerts)
}
