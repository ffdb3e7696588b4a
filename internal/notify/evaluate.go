package notify

import (
	"strings"
	"time"

	"github.com/gpudeals/gpu-deals/internal/alerts"
	"github.com/gpudeals/gpu-deals/pkg/pricing"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// Evaluate matches the alert list against a result snapshot and returns a
// payload for every alert whose brand has a listing at or below its price
// threshold. Alerts whose daily cutoff has already passed are skipped.
// Brand matching against result IDs is case-insensitive.
func Evaluate(alertList []domain.Alert, results []domain.ResultItem, now time.Time) []AlertPayload {
	var payloads []AlertPayload

	for i := range alertList {
		a := &alertList[i]
		if !windowOpen(a.EndDateTime, now) {
			continue
		}

		for j := range results {
			r := &results[j]
			if !strings.EqualFold(a.Brand, r.ID) {
				continue
			}

			store, url, lowest, ok := lowestListing(r)
			if !ok || lowest > float64(a.Price) {
				continue
			}

			value, _ := r.CalculatedValue()
			payloads = append(payloads, AlertPayload{
				Brand:       a.Brand,
				Threshold:   a.Price,
				LowestPrice: lowest,
				Value:       value,
				Store:       store,
				URL:         url,
				EndsAt:      alerts.FormatEndTime(a.EndDateTime),
			})
		}
	}

	return payloads
}

// windowOpen reports whether the wall clock of now falls at or before the
// alert's daily cutoff. Only hour and minute are compared; the cutoff
// recurs every day.
func windowOpen(end, now time.Time) bool {
	nowMinutes := now.Hour()*60 + now.Minute()
	endMinutes := end.Hour()*60 + end.Minute()
	return nowMinutes <= endMinutes
}

func lowestListing(r *domain.ResultItem) (store, url string, lowest float64, ok bool) {
	for name, l := range r.Listings {
		v, parsed := pricing.ParsePrice(l.Price)
		if !parsed {
			continue
		}
		if !ok || v < lowest {
			store, url, lowest, ok = name, l.URL, v, true
		}
	}
	return store, url, lowest, ok
}
