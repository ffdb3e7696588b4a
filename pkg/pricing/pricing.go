// Package pricing normalizes vendor price strings and derives the
// performance-per-dollar value score (decoupled from the domain model).
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice extracts a numeric value from a loosely formatted price string.
// Currency symbols, thousands separators, whitespace, and letters are
// discarded; only ASCII digits and the decimal point survive. Returns
// ok=false when nothing numeric remains or the filtered string does not
// parse (multiple decimal points fail strconv.ParseFloat and count as
// unparseable).
func ParsePrice(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	filtered := b.String()
	if filtered == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(filtered, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Lowest returns the minimum parseable price across the given raw price
// strings. Unparseable entries are skipped; ok=false when none parse.
func Lowest(prices []string) (float64, bool) {
	var (
		lowest float64
		found  bool
	)
	for _, raw := range prices {
		v, ok := ParsePrice(raw)
		if !ok {
			continue
		}
		if !found || v < lowest {
			lowest = v
			found = true
		}
	}
	return lowest, found
}

// Value computes the performance-per-dollar score: benchmark divided by the
// lowest price, rounded half away from zero. ok=false when the price is
// absent or zero (no division by zero).
func Value(benchmark int, lowestPrice float64, priceOK bool) (int, bool) {
	if !priceOK || lowestPrice == 0 {
		return 0, false
	}
	return int(math.Round(float64(benchmark) / lowestPrice)), true
}
