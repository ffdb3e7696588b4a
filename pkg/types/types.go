// Package domain defines the core business types for the GPU deals tracker.
package domain

import (
	"slices"
	"time"

	"github.com/gpudeals/gpu-deals/pkg/pricing"
)

// Listing is one retailer's offer for a GPU model. Price is the raw vendor
// string ("$1,299.99"); normalization happens in pkg/pricing. URL is opaque
// and passed through unmodified.
type Listing struct {
	Price string `json:"price"`
	URL   string `json:"url"`
}

// ResultItem is one GPU model's market snapshot as returned by the pricing
// API. ID is the vendor-assigned model identifier (e.g. "RTX 4090") and
// doubles as the display key. Listings is keyed by retailer name.
//
// A result collection is replaced wholesale after each successful fetch;
// items are never mutated in place.
type ResultItem struct {
	ID        string             `json:"id"`
	Vendor    string             `json:"vendor"`
	Benchmark int                `json:"benchmark"`
	Listings  map[string]Listing `json:"listings"`
}

// LowestPrice returns the minimum parseable price across the item's
// listings. ok=false when no listing price parses.
func (r *ResultItem) LowestPrice() (float64, bool) {
	prices := make([]string, 0, len(r.Listings))
	for _, l := range r.Listings {
		prices = append(prices, l.Price)
	}
	return pricing.Lowest(prices)
}

// CalculatedValue returns the benchmark-per-dollar score, or ok=false when
// no price is available (or the lowest price is zero).
func (r *ResultItem) CalculatedValue() (int, bool) {
	lowest, ok := r.LowestPrice()
	return pricing.Value(r.Benchmark, lowest, ok)
}

// SortByValue orders items by calculated value descending. Items with no
// value sort as zero, i.e. last. The sort is stable so equal-value items
// keep their fetch order.
func SortByValue(items []ResultItem) {
	slices.SortStableFunc(items, func(a, b ResultItem) int {
		av, _ := a.CalculatedValue()
		bv, _ := b.CalculatedValue()
		return bv - av
	})
}

// AlertAnchorDate is the fixed nominal calendar date alert end times are
// re-anchored to. Only the hour and minute carry meaning; the alert is a
// daily recurring cutoff, not an absolute timestamp.
var AlertAnchorDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Alert is a user-defined daily price threshold for a GPU brand.
// ID is generated locally and never persisted or round-tripped.
type Alert struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Price    int    `json:"price"`
	// EndDateTime holds only a wall-clock hour:minute, anchored to
	// AlertAnchorDate with seconds zeroed.
	EndDateTime time.Time `json:"endDateTime"`
}

// AnchorTime builds an alert end time at the given hour and minute on the
// nominal anchor date.
func AnchorTime(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}
