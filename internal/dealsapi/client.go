// Package dealsapi provides a client for the GPU pricing API abstracted
// behind an interface for testability.
package dealsapi

import (
	"context"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// Client defines the interface for fetching the current result set from a
// pricing endpoint.
type Client interface {
	FetchResults(ctx context.Context, rawURL string) ([]domain.ResultItem, error)
}
