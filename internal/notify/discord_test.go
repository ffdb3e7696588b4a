package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpudeals/gpu-deals/internal/notify"
)

type capturedWebhook struct {
	Embeds []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Color  int    `json:"color"`
		Fields []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"fields"`
	} `json:"embeds"`
}

func capture(t *testing.T, status int) (*httptest.Server, *capturedWebhook) {
	t.Helper()
	var got capturedWebhook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func samplePayload() notify.AlertPayload {
	return notify.AlertPayload{
		Brand:       "RTX 4090",
		Threshold:   1500,
		LowestPrice: 1199.99,
		Value:       20,
		Store:       "newegg",
		URL:         "https://example.com/rtx-4090",
		EndsAt:      "23:59",
	}
}

func TestDiscordNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	srv, got := capture(t, http.StatusNoContent)
	n := notify.NewDiscordNotifier(srv.URL)

	p := samplePayload()
	require.NoError(t, n.SendAlert(context.Background(), &p))

	require.Len(t, got.Embeds, 1)
	embed := got.Embeds[0]
	assert.Equal(t, "Price Alert: RTX 4090 at $1199.99", embed.Title)
	assert.Equal(t, "https://example.com/rtx-4090", embed.URL)
	// 1199.99 is 20%+ under 1500, so the embed is green.
	assert.Equal(t, 0x2ECC71, embed.Color)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "$1500", fields["Threshold"])
	assert.Equal(t, "$1199.99", fields["Lowest"])
	assert.Equal(t, "newegg", fields["Store"])
	assert.Equal(t, "20", fields["Value"])
	assert.Equal(t, "23:59", fields["Ends"])
}

func TestDiscordNotifier_SendBatchAlert_CapsAtTenEmbeds(t *testing.T) {
	t.Parallel()

	srv, got := capture(t, http.StatusNoContent)
	n := notify.NewDiscordNotifier(srv.URL)

	payloads := make([]notify.AlertPayload, 12)
	for i := range payloads {
		payloads[i] = samplePayload()
	}
	require.NoError(t, n.SendBatchAlert(context.Background(), payloads))

	// 10 alert embeds plus one overflow note.
	require.Len(t, got.Embeds, 11)
	assert.Contains(t, got.Embeds[10].Title, "2 more price alerts")
}

func TestDiscordNotifier_RateLimited(t *testing.T) {
	t.Parallel()

	srv, _ := capture(t, http.StatusTooManyRequests)
	n := notify.NewDiscordNotifier(srv.URL)

	p := samplePayload()
	err := n.SendAlert(context.Background(), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDiscordNotifier_ServerError(t *testing.T) {
	t.Parallel()

	srv, _ := capture(t, http.StatusInternalServerError)
	n := notify.NewDiscordNotifier(srv.URL)

	p := samplePayload()
	err := n.SendAlert(context.Background(), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
