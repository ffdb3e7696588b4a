package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

func TestState_SnapshotSortedByValue(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Replace([]domain.ResultItem{
		{
			ID: "mid", Benchmark: 20000,
			Listings: map[string]domain.Listing{"a": {Price: "1000"}},
		},
		{
			ID: "best", Benchmark: 30000,
			Listings: map[string]domain.Listing{"a": {Price: "500"}},
		},
		{
			ID: "no-price", Benchmark: 50000,
			Listings: map[string]domain.Listing{"a": {Price: "Sold Out"}},
		},
	})

	got := s.Snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "best", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "no-price", got[2].ID, "items without a value sort last")
}

func TestState_SnapshotReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Replace([]domain.ResultItem{{ID: "x", Benchmark: 1}})

	got := s.Snapshot()
	got[0].ID = "mutated"

	assert.Equal(t, "x", s.Snapshot()[0].ID)
}

func TestState_ErrorKeepsResults(t *testing.T) {
	t.Parallel()

	s := NewState()
	s.Replace([]domain.ResultItem{{ID: "x", Benchmark: 1}})
	s.RecordError("boom")

	assert.Len(t, s.Snapshot(), 1)
	assert.Equal(t, "boom", s.LastError())

	// A later success clears the error.
	s.Replace([]domain.ResultItem{{ID: "y", Benchmark: 1}})
	assert.Empty(t, s.LastError())
}

func TestState_LastAttempt(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.True(t, s.LastAttempt().IsZero())

	now := time.Now()
	s.RecordAttempt(now)
	assert.Equal(t, now, s.LastAttempt())
}
