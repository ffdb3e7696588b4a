package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Embed colors by how far the lowest price sits under the alert threshold.
const (
	colorGreen  = 0x2ECC71 // 20%+ under threshold
	colorYellow = 0xF1C40F // 5-20% under
	colorOrange = 0xE67E22 // just under
)

// maxEmbeds is Discord's per-message embed limit.
const maxEmbeds = 10

// DiscordNotifier delivers price alerts to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendAlert sends a single alert as a Discord embed.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	})
}

// SendBatchAlert sends multiple alerts as one Discord message, truncating to
// the embed limit with an overflow note.
func (d *DiscordNotifier) SendBatchAlert(ctx context.Context, alerts []AlertPayload) error {
	embeds := make([]discordEmbed, 0, min(len(alerts), maxEmbeds)+1)
	for i := range min(len(alerts), maxEmbeds) {
		embeds = append(embeds, buildEmbed(&alerts[i]))
	}
	if len(alerts) > maxEmbeds {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more price alerts", len(alerts)-maxEmbeds),
			Color:       colorYellow,
			Description: "Check the results list for everything under threshold.",
		})
	}
	return d.post(ctx, discordWebhookPayload{Embeds: embeds})
}

func buildEmbed(alert *AlertPayload) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("Price Alert: %s at $%.2f", alert.Brand, alert.LowestPrice),
		URL:   alert.URL,
		Color: discountColor(alert.LowestPrice, alert.Threshold),
		Fields: []discordEmbedField{
			{Name: "Threshold", Value: fmt.Sprintf("$%d", alert.Threshold), Inline: true},
			{Name: "Lowest", Value: fmt.Sprintf("$%.2f", alert.LowestPrice), Inline: true},
			{Name: "Store", Value: alert.Store, Inline: true},
		},
	}

	if alert.Value > 0 {
		embed.Fields = append(embed.Fields,
			discordEmbedField{Name: "Value", Value: fmt.Sprintf("%d", alert.Value), Inline: true})
	}
	if alert.EndsAt != "" {
		embed.Fields = append(embed.Fields,
			discordEmbedField{Name: "Ends", Value: alert.EndsAt, Inline: true})
	}

	return embed
}

func discountColor(lowest float64, threshold int) int {
	t := float64(threshold)
	switch {
	case lowest <= 0.8*t:
		return colorGreen
	case lowest <= 0.95*t:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("discord rate limited (429)")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
