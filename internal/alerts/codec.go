// Package alerts implements the persisted alert list: a tolerant JSON codec
// for the stored form and the bootstrap/replace service around it.
package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// timeLayout is the canonical persisted form of an alert end time. Encoding
// always uses this layout; the date component is dropped by design since the
// alert is a daily recurring cutoff.
const timeLayout = "15:04"

// isoLayouts are the fallback layouts tried when the stored string is not a
// bare HH:mm. Full timestamps come first; time-only ISO forms cover values
// like "23:59:00.000Z". The hour and minute are taken as written in the
// string (in its own offset) and everything else is discarded.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"15:04:05.000Z07:00",
	"15:04:05Z07:00",
	"15:04:05",
}

// DecodeError reports a persisted alert field that could not be parsed.
// Callers treat it as "no valid persisted alerts" and fall back to defaults;
// the codec itself never substitutes values.
type DecodeError struct {
	Field string
	Raw   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding alert field %q: unable to parse %q", e.Field, e.Raw)
}

// wireAlert is the stored JSON shape. IDs are intentionally absent: they are
// local-only and regenerated on every decode.
type wireAlert struct {
	Brand       string `json:"brand"`
	Price       int    `json:"price"`
	EndDateTime string `json:"endDateTime"`
}

// Decode parses a stored JSON array of alerts. Each endDateTime may be a
// bare "HH:mm" or a full/partial ISO timestamp; either way the result is
// re-anchored to the nominal date with seconds zeroed and given a fresh ID.
// Any unparseable time fails the whole decode with a *DecodeError.
func Decode(data []byte) ([]domain.Alert, error) {
	var wire []wireAlert
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing alerts JSON: %w", err)
	}

	alerts := make([]domain.Alert, 0, len(wire))
	for _, w := range wire {
		end, err := parseEndTime(w.EndDateTime)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, domain.Alert{
			ID:          uuid.NewString(),
			Brand:       w.Brand,
			Price:       w.Price,
			EndDateTime: end,
		})
	}
	return alerts, nil
}

// Encode serializes alerts to the stored JSON form. Brand and price pass
// through unchanged; endDateTime is always written as "HH:mm", and IDs are
// never persisted.
func Encode(alerts []domain.Alert) ([]byte, error) {
	wire := make([]wireAlert, 0, len(alerts))
	for _, a := range alerts {
		wire = append(wire, wireAlert{
			Brand:       a.Brand,
			Price:       a.Price,
			EndDateTime: a.EndDateTime.Format(timeLayout),
		})
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encoding alerts: %w", err)
	}
	return data, nil
}

// ParseEndTime parses a single end time string the same way Decode does.
// The API layer uses it to accept either form on alert updates.
func ParseEndTime(raw string) (time.Time, error) {
	return parseEndTime(raw)
}

// FormatEndTime renders an end time in the canonical "HH:mm" form.
func FormatEndTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseEndTime(raw string) (time.Time, error) {
	if len(raw) == len(timeLayout) {
		t, err := time.Parse(timeLayout, raw)
		if err != nil {
			return time.Time{}, &DecodeError{Field: "endDateTime", Raw: raw}
		}
		return domain.AnchorTime(t.Hour(), t.Minute()), nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return domain.AnchorTime(t.Hour(), t.Minute()), nil
		}
	}

	return time.Time{}, &DecodeError{Field: "endDateTime", Raw: raw}
}
