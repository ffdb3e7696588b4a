package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpudeals/gpu-deals/internal/notify"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

type fakeNotifier struct {
	mu      sync.Mutex
	batches [][]notify.AlertPayload
	err     error
}

func (f *fakeNotifier) SendAlert(_ context.Context, alert *notify.AlertPayload) error {
	return f.SendBatchAlert(context.Background(), []notify.AlertPayload{*alert})
}

func (f *fakeNotifier) SendBatchAlert(_ context.Context, alerts []notify.AlertPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, alerts)
	return nil
}

func (f *fakeNotifier) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func alertsUnder1500() []domain.Alert {
	return []domain.Alert{
		{Brand: "rtx-4090", Price: 1500, EndDateTime: domain.AnchorTime(23, 59)},
	}
}

func itemAt(price string) []domain.ResultItem {
	return []domain.ResultItem{
		{ID: "rtx-4090", Benchmark: 24000,
			Listings: map[string]domain.Listing{"newegg": {Price: price}}},
	}
}

func TestEngine_NotifiesOnMatchingAlert(t *testing.T) {
	t.Parallel()

	client := &fakeClient{items: itemAt("$1,199.99")}
	notifier := &fakeNotifier{}
	eng := newTestEngine(t, client,
		WithAlertNotifier(notifier, alertsUnder1500),
		WithNowFunc(func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }),
	)

	require.NoError(t, eng.RunFetch(context.Background()))

	require.Equal(t, 1, notifier.batchCount())
	batch := notifier.batches[0]
	require.Len(t, batch, 1)
	assert.Equal(t, "rtx-4090", batch[0].Brand)
	assert.InDelta(t, 1199.99, batch[0].LowestPrice, 0.001)
}

func TestEngine_DoesNotRenotifyWhileConditionHolds(t *testing.T) {
	t.Parallel()

	client := &fakeClient{items: itemAt("$1,199.99")}
	notifier := &fakeNotifier{}
	eng := newTestEngine(t, client,
		WithAlertNotifier(notifier, alertsUnder1500),
		WithNowFunc(func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }),
	)

	require.NoError(t, eng.RunFetch(context.Background()))
	require.NoError(t, eng.RunFetch(context.Background()))

	assert.Equal(t, 1, notifier.batchCount(), "same condition must not re-fire")
}

func TestEngine_RenotifiesAfterConditionClears(t *testing.T) {
	t.Parallel()

	client := &fakeClient{items: itemAt("$1,199.99")}
	notifier := &fakeNotifier{}
	eng := newTestEngine(t, client,
		WithAlertNotifier(notifier, alertsUnder1500),
		WithNowFunc(func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }),
	)
	ctx := context.Background()

	require.NoError(t, eng.RunFetch(ctx))

	// Price rises above the threshold, then drops again.
	client.items = itemAt("$1,599.00")
	require.NoError(t, eng.RunFetch(ctx))
	client.items = itemAt("$1,450.00")
	require.NoError(t, eng.RunFetch(ctx))

	assert.Equal(t, 2, notifier.batchCount())
}

func TestEngine_NotifierFailureDoesNotFailFetch(t *testing.T) {
	t.Parallel()

	client := &fakeClient{items: itemAt("$1,199.99")}
	notifier := &fakeNotifier{err: assert.AnError}
	eng := newTestEngine(t, client,
		WithAlertNotifier(notifier, alertsUnder1500),
		WithNowFunc(func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }),
	)

	require.NoError(t, eng.RunFetch(context.Background()))
	assert.Equal(t, 1, eng.State().Len())
}
