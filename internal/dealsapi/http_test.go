package dealsapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpudeals/gpu-deals/internal/dealsapi"
)

const resultsBody = `[
	{
		"id": "rtx-4090",
		"vendor": "NVIDIA",
		"benchmark": 35000,
		"listings": {
			"retailerA": {"price": "$1,299.99", "url": "https://a.example/4090"},
			"retailerB": {"price": "1199.00", "url": "https://b.example/4090"}
		}
	},
	{
		"id": "rx-7900-xtx",
		"vendor": "AMD",
		"benchmark": 29000,
		"listings": {
			"retailerA": {"price": "Sold Out", "url": "https://a.example/7900"}
		}
	}
]`

func TestHTTPClient_FetchResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resultsBody))
	}))
	defer srv.Close()

	c := dealsapi.NewHTTPClient()
	items, err := c.FetchResults(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "rtx-4090", items[0].ID)
	assert.Equal(t, "NVIDIA", items[0].Vendor)
	assert.Equal(t, 35000, items[0].Benchmark)
	require.Len(t, items[0].Listings, 2)
	assert.Equal(t, "$1,299.99", items[0].Listings["retailerA"].Price)

	lowest, ok := items[0].LowestPrice()
	require.True(t, ok)
	assert.InDelta(t, 1199.00, lowest, 0.001)

	_, ok = items[1].LowestPrice()
	assert.False(t, ok, "sold out listing has no parseable price")
}

func TestHTTPClient_FetchResults_InvalidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "no scheme", url: "api.gpudeals.net"},
		{name: "unsupported scheme", url: "ftp://api.gpudeals.net/"},
		{name: "garbage", url: "not a url"},
		{name: "scheme only", url: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := dealsapi.NewHTTPClient()
			_, err := c.FetchResults(context.Background(), tt.url)
			require.ErrorIs(t, err, dealsapi.ErrInvalidURL)
		})
	}
}

func TestHTTPClient_FetchResults_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := dealsapi.NewHTTPClient()
	_, err := c.FetchResults(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *dealsapi.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestHTTPClient_FetchResults_BadBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "object instead of array", body: `{"not": "a list"}`},
		{name: "null body", body: `null`},
		{name: "truncated array", body: `[{"id": "rtx-4090"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := dealsapi.NewHTTPClient()
			_, err := c.FetchResults(context.Background(), srv.URL)
			require.ErrorIs(t, err, dealsapi.ErrDecode)
		})
	}
}

func TestHTTPClient_FetchResults_RateLimited(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// 1 req/sec with burst 1: the second call must wait about a second.
	c := dealsapi.NewHTTPClient(dealsapi.WithRateLimit(1, 1))

	start := time.Now()
	_, err := c.FetchResults(context.Background(), srv.URL)
	require.NoError(t, err)
	_, err = c.FetchResults(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond)
}

func TestHTTPClient_FetchResults_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := dealsapi.NewHTTPClient()
	_, err := c.FetchResults(ctx, srv.URL)
	require.Error(t, err)
}
