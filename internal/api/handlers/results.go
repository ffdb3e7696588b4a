package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gpudeals/gpu-deals/internal/engine"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// ResultView is the API representation of one GPU model. Derived pricing
// fields are materialized at response time; a model with no parseable price
// omits both.
type ResultView struct {
	ID              string                    `json:"id"              doc:"GPU model identifier"`
	Vendor          string                    `json:"vendor"          doc:"GPU vendor"`
	Benchmark       int                       `json:"benchmark"       doc:"Benchmark score"`
	Listings        map[string]domain.Listing `json:"listings"        doc:"Retailer listings keyed by retailer"`
	LowestPrice     *float64                  `json:"lowestPrice,omitempty"     doc:"Lowest parseable listing price"`
	CalculatedValue *int                      `json:"calculatedValue,omitempty" doc:"Benchmark points per dollar at the lowest price"`
}

// NewResultView builds the API view of a result item.
func NewResultView(item domain.ResultItem) ResultView {
	v := ResultView{
		ID:        item.ID,
		Vendor:    item.Vendor,
		Benchmark: item.Benchmark,
		Listings:  item.Listings,
	}
	if lowest, ok := item.LowestPrice(); ok {
		v.LowestPrice = &lowest
	}
	if value, ok := item.CalculatedValue(); ok {
		v.CalculatedValue = &value
	}
	return v
}

// ResultsHandler handles result query endpoints.
type ResultsHandler struct {
	state *engine.State
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler(state *engine.State) *ResultsHandler {
	return &ResultsHandler{state: state}
}

// ListResultsOutput is the response for listing results.
type ListResultsOutput struct {
	Body struct {
		Results     []ResultView `json:"results"`
		Total       int          `json:"total"`
		LastAttempt *time.Time   `json:"lastAttempt,omitempty" doc:"Time of the most recent fetch attempt"`
	}
}

// ListResults returns the current result snapshot sorted by calculated
// value, best first.
func (h *ResultsHandler) ListResults(
	_ context.Context,
	_ *struct{},
) (*ListResultsOutput, error) {
	items := h.state.Snapshot()

	views := make([]ResultView, 0, len(items))
	for _, item := range items {
		views = append(views, NewResultView(item))
	}

	resp := &ListResultsOutput{}
	resp.Body.Results = views
	resp.Body.Total = len(views)
	if last := h.state.LastAttempt(); !last.IsZero() {
		resp.Body.LastAttempt = &last
	}
	return resp, nil
}

// GetResultInput is the input for getting a single result.
type GetResultInput struct {
	ID string `path:"id" doc:"GPU model identifier"`
}

// GetResultOutput is the response for getting a single result.
type GetResultOutput struct {
	Body ResultView
}

// GetResult returns a single GPU model by ID.
func (h *ResultsHandler) GetResult(
	_ context.Context,
	input *GetResultInput,
) (*GetResultOutput, error) {
	for _, item := range h.state.Snapshot() {
		if item.ID == input.ID {
			return &GetResultOutput{Body: NewResultView(item)}, nil
		}
	}
	return nil, huma.Error404NotFound("result not found")
}

// RegisterResultRoutes registers result endpoints with the Huma API.
func RegisterResultRoutes(api huma.API, h *ResultsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-results",
		Method:      http.MethodGet,
		Path:        "/api/v1/results",
		Summary:     "List results",
		Description: "Returns the current GPU result set sorted by calculated value, best first.",
		Tags:        []string{"results"},
	}, h.ListResults)

	huma.Register(api, huma.Operation{
		OperationID: "get-result",
		Method:      http.MethodGet,
		Path:        "/api/v1/results/{id}",
		Summary:     "Get a result by ID",
		Description: "Returns a single GPU model from the current snapshot.",
		Tags:        []string{"results"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetResult)
}
