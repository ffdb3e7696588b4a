package client

import "context"

// Alert is one price alert as returned by the API. End times are always
// "HH:mm".
type Alert struct {
	ID          string `json:"id,omitempty"`
	Brand       string `json:"brand"`
	Price       int    `json:"price"`
	EndDateTime string `json:"endDateTime"`
}

type alertsResponse struct {
	Alerts []Alert `json:"alerts"`
}

type alertsRequest struct {
	Alerts []Alert `json:"alerts"`
}

// ListAlerts returns the current alert list.
func (c *Client) ListAlerts(ctx context.Context) ([]Alert, error) {
	var resp alertsResponse
	if err := c.get(ctx, "/api/v1/alerts", &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// ReplaceAlerts replaces the whole alert list and returns the stored form.
func (c *Client) ReplaceAlerts(ctx context.Context, alerts []Alert) ([]Alert, error) {
	var resp alertsResponse
	if err := c.put(ctx, "/api/v1/alerts", alertsRequest{Alerts: alerts}, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}
