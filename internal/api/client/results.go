package client

import (
	"context"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// Result is one GPU model as returned by the API, including the derived
// pricing fields.
type Result struct {
	ID              string                    `json:"id"`
	Vendor          string                    `json:"vendor"`
	Benchmark       int                       `json:"benchmark"`
	Listings        map[string]domain.Listing `json:"listings"`
	LowestPrice     *float64                  `json:"lowestPrice,omitempty"`
	CalculatedValue *int                      `json:"calculatedValue,omitempty"`
}

type resultsResponse struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

// ListResults returns the current result set, best value first.
func (c *Client) ListResults(ctx context.Context) ([]Result, error) {
	var resp resultsResponse
	if err := c.get(ctx, "/api/v1/results", &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetResult returns a single GPU model by ID.
func (c *Client) GetResult(ctx context.Context, id string) (*Result, error) {
	var r Result
	if err := c.get(ctx, "/api/v1/results/"+id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Status is the service status as returned by the API.
type Status struct {
	Items          int    `json:"items"`
	CadenceMinutes int    `json:"cadenceMinutes"`
	APIURL         string `json:"apiUrl"`
	LastAttempt    string `json:"lastAttempt,omitempty"`
	LastError      string `json:"lastError,omitempty"`
	NextRun        string `json:"nextRun,omitempty"`
}

// GetStatus returns the service status.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.get(ctx, "/api/v1/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TriggerFetch runs one fetch cycle on the server.
func (c *Client) TriggerFetch(ctx context.Context) error {
	return c.post(ctx, "/api/v1/fetch", nil, nil)
}
