package alerts

import (
	"github.com/google/uuid"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// Defaults returns the built-in alert set used when nothing valid is
// persisted. End time is the fixed end-of-day cutoff 23:59.
func Defaults() []domain.Alert {
	return []domain.Alert{
		{
			ID:          uuid.NewString(),
			Brand:       "RTX 4090",
			Price:       1500,
			EndDateTime: domain.AnchorTime(23, 59),
		},
		{
			ID:          uuid.NewString(),
			Brand:       "RX 7900 XTX",
			Price:       900,
			EndDateTime: domain.AnchorTime(23, 59),
		},
	}
}
