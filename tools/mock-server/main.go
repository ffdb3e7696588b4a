// Package main implements a mock GPU pricing API for local development.
// It serves a result set from a JSON fixture (or a built-in sample) and can
// jitter listing prices per request so value rankings move between fetches.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/gpudeals/gpu-deals/pkg/pricing"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "", "path to a results fixture (JSON array); empty uses the built-in sample")
	jitter := flag.Float64("jitter", 0, "max relative price jitter per request, e.g. 0.05 for +/-5%")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	items, err := loadResults(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded results", "items", len(items))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", resultsHandler(logger, items, *jitter))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock pricing server", "addr", addr, "jitter", *jitter)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadResults(path string) ([]domain.ResultItem, error) {
	if path == "" {
		return sampleResults(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var items []domain.ResultItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return items, nil
}

func sampleResults() []domain.ResultItem {
	return []domain.ResultItem{
		{
			ID:        "RTX 4090",
			Vendor:    "NVIDIA",
			Benchmark: 35000,
			Listings: map[string]domain.Listing{
				"newegg":  {Price: "$1,599.99", URL: "https://example.com/newegg/rtx-4090"},
				"bestbuy": {Price: "$1,649.00", URL: "https://example.com/bestbuy/rtx-4090"},
			},
		},
		{
			ID:        "RTX 4080 Super",
			Vendor:    "NVIDIA",
			Benchmark: 28000,
			Listings: map[string]domain.Listing{
				"newegg": {Price: "$999.99", URL: "https://example.com/newegg/rtx-4080s"},
			},
		},
		{
			ID:        "RX 7900 XTX",
			Vendor:    "AMD",
			Benchmark: 25000,
			Listings: map[string]domain.Listing{
				"amazon":      {Price: "$929.00", URL: "https://example.com/amazon/rx-7900-xtx"},
				"microcenter": {Price: "Sold Out", URL: "https://example.com/mc/rx-7900-xtx"},
			},
		},
		{
			ID:        "Arc A770",
			Vendor:    "Intel",
			Benchmark: 13000,
			Listings: map[string]domain.Listing{
				"newegg": {Price: "$289.99", URL: "https://example.com/newegg/arc-a770"},
			},
		},
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func resultsHandler(logger *slog.Logger, items []domain.ResultItem, jitter float64) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := items
		if jitter > 0 {
			out = jitterResults(items, jitter)
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(out)
		logger.Info("served results", "items", len(out))
	}
}

// jitterResults returns a copy of items with every parseable listing price
// scaled by a random factor in [1-jitter, 1+jitter]. Unparseable prices
// ("Sold Out") pass through untouched.
func jitterResults(items []domain.ResultItem, jitter float64) []domain.ResultItem {
	out := make([]domain.ResultItem, len(items))
	for i, item := range items {
		copied := item
		copied.Listings = make(map[string]domain.Listing, len(item.Listings))
		for store, l := range item.Listings {
			if v, ok := pricing.ParsePrice(l.Price); ok {
				factor := 1 + (rand.Float64()*2-1)*jitter
				l.Price = fmt.Sprintf("$%.2f", v*factor)
			}
			copied.Listings[store] = l
		}
		out[i] = copied
	}
	return out
}
