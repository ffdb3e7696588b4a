package client

import "context"

type cadenceBody struct {
	Minutes int `json:"minutes"`
}

type apiURLBody struct {
	URL string `json:"url"`
}

// GetCadence returns the refresh cadence in minutes.
func (c *Client) GetCadence(ctx context.Context) (int, error) {
	var body cadenceBody
	if err := c.get(ctx, "/api/v1/settings/cadence", &body); err != nil {
		return 0, err
	}
	return body.Minutes, nil
}

// SetCadence updates the refresh cadence in minutes.
func (c *Client) SetCadence(ctx context.Context, minutes int) (int, error) {
	var body cadenceBody
	if err := c.put(ctx, "/api/v1/settings/cadence", cadenceBody{Minutes: minutes}, &body); err != nil {
		return 0, err
	}
	return body.Minutes, nil
}

// GetAPIURL returns the configured pricing endpoint.
func (c *Client) GetAPIURL(ctx context.Context) (string, error) {
	var body apiURLBody
	if err := c.get(ctx, "/api/v1/settings/url", &body); err != nil {
		return "", err
	}
	return body.URL, nil
}

// SetAPIURL updates the pricing endpoint.
func (c *Client) SetAPIURL(ctx context.Context, url string) (string, error) {
	var body apiURLBody
	if err := c.put(ctx, "/api/v1/settings/url", apiURLBody{URL: url}, &body); err != nil {
		return "", err
	}
	return body.URL, nil
}
