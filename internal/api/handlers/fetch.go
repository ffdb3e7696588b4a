package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gpudeals/gpu-deals/internal/engine"
)

// Fetcher defines the interface for triggering a fetch cycle.
type Fetcher interface {
	RunFetch(ctx context.Context) error
}

// FetchHandler handles manual fetch trigger requests.
type FetchHandler struct {
	fetcher Fetcher
}

// NewFetchHandler creates a new FetchHandler.
func NewFetchHandler(f Fetcher) *FetchHandler {
	return &FetchHandler{fetcher: f}
}

// FetchOutput is the response body for the fetch endpoint.
type FetchOutput struct {
	Body struct {
		Status string `json:"status" example:"fetch completed" doc:"Fetch status"`
	}
}

// Fetch runs one fetch cycle against the pricing API. A fetch already in
// progress returns 409 rather than queueing a duplicate.
func (h *FetchHandler) Fetch(ctx context.Context, _ *struct{}) (*FetchOutput, error) {
	if err := h.fetcher.RunFetch(ctx); err != nil {
		if errors.Is(err, engine.ErrFetchInProgress) {
			return nil, huma.Error409Conflict("fetch already in progress")
		}
		return nil, huma.Error502BadGateway("fetch failed: " + err.Error())
	}

	resp := &FetchOutput{}
	resp.Body.Status = "fetch completed"
	return resp, nil
}

// RegisterFetchRoutes registers the fetch trigger endpoint with the Huma API.
func RegisterFetchRoutes(api huma.API, h *FetchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-fetch",
		Method:      http.MethodPost,
		Path:        "/api/v1/fetch",
		Summary:     "Trigger a fetch",
		Description: "Runs one fetch cycle against the pricing API and replaces the snapshot on success.",
		Tags:        []string{"fetch"},
		Errors:      []int{http.StatusConflict, http.StatusBadGateway},
	}, h.Fetch)
}
