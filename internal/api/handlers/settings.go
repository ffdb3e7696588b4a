package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gpudeals/gpu-deals/internal/settings"
)

// SettingsHandler handles cadence and endpoint settings endpoints.
type SettingsHandler struct {
	settings *settings.Manager
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(mgr *settings.Manager) *SettingsHandler {
	return &SettingsHandler{settings: mgr}
}

// CadenceOutput is the response for cadence endpoints.
type CadenceOutput struct {
	Body struct {
		Minutes int `json:"minutes" doc:"Refresh cadence in minutes"`
	}
}

// GetCadence returns the current refresh cadence.
func (h *SettingsHandler) GetCadence(_ context.Context, _ *struct{}) (*CadenceOutput, error) {
	resp := &CadenceOutput{}
	resp.Body.Minutes = h.settings.Cadence()
	return resp, nil
}

// PutCadenceInput is the input for updating the cadence.
type PutCadenceInput struct {
	Body struct {
		Minutes int `json:"minutes" doc:"Refresh cadence in minutes, clamped to 1-60" minimum:"1" maximum:"60"`
	}
}

// PutCadence updates the refresh cadence and re-arms the scheduler.
func (h *SettingsHandler) PutCadence(
	ctx context.Context,
	input *PutCadenceInput,
) (*CadenceOutput, error) {
	if err := h.settings.SetCadence(ctx, input.Body.Minutes); err != nil {
		return nil, huma.Error500InternalServerError("saving cadence failed: " + err.Error())
	}

	resp := &CadenceOutput{}
	resp.Body.Minutes = h.settings.Cadence()
	return resp, nil
}

// APIURLOutput is the response for endpoint settings endpoints.
type APIURLOutput struct {
	Body struct {
		URL string `json:"url" doc:"Pricing API endpoint"`
	}
}

// GetAPIURL returns the configured pricing endpoint.
func (h *SettingsHandler) GetAPIURL(_ context.Context, _ *struct{}) (*APIURLOutput, error) {
	resp := &APIURLOutput{}
	resp.Body.URL = h.settings.APIURL()
	return resp, nil
}

// PutAPIURLInput is the input for updating the pricing endpoint.
type PutAPIURLInput struct {
	Body struct {
		URL string `json:"url" doc:"Pricing API endpoint" minLength:"1"`
	}
}

// PutAPIURL updates the pricing endpoint. The value is stored as given;
// validity is checked at fetch time, where a malformed URL fails fast.
func (h *SettingsHandler) PutAPIURL(
	ctx context.Context,
	input *PutAPIURLInput,
) (*APIURLOutput, error) {
	if err := h.settings.SetAPIURL(ctx, input.Body.URL); err != nil {
		return nil, huma.Error500InternalServerError("saving api url failed: " + err.Error())
	}

	resp := &APIURLOutput{}
	resp.Body.URL = h.settings.APIURL()
	return resp, nil
}

// RegisterSettingsRoutes registers settings endpoints with the Huma API.
func RegisterSettingsRoutes(api huma.API, h *SettingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cadence",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/cadence",
		Summary:     "Get refresh cadence",
		Tags:        []string{"settings"},
	}, h.GetCadence)

	huma.Register(api, huma.Operation{
		OperationID: "put-cadence",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/cadence",
		Summary:     "Update refresh cadence",
		Description: "Sets the refresh cadence in minutes and re-arms the scheduler immediately.",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PutCadence)

	huma.Register(api, huma.Operation{
		OperationID: "get-api-url",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/url",
		Summary:     "Get pricing endpoint",
		Tags:        []string{"settings"},
	}, h.GetAPIURL)

	huma.Register(api, huma.Operation{
		OperationID: "put-api-url",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/url",
		Summary:     "Update pricing endpoint",
		Description: "Sets the pricing API endpoint. Takes effect on the next fetch.",
		Tags:        []string{"settings"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PutAPIURL)
}
