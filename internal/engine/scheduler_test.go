package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, &fakeClient{})

	sched, err := NewScheduler(eng, 15, quietLogger())
	require.NoError(t, err)

	entries := sched.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, 15, sched.Cadence())
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, &fakeClient{})

	sched, err := NewScheduler(eng, 60, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_StartRunsImmediateFetch(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	eng := newTestEngine(t, client)

	sched, err := NewScheduler(eng, 60, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	require.Eventually(t, func() bool {
		return client.callCount() >= 1
	}, time.Second, 5*time.Millisecond, "start triggers a fetch without waiting for the cadence")
}

func TestScheduler_Reschedule(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, &fakeClient{})

	sched, err := NewScheduler(eng, 15, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	before := sched.NextRun()
	require.NoError(t, sched.Reschedule(5))

	assert.Equal(t, 5, sched.Cadence())
	assert.Len(t, sched.Entries(), 1, "reschedule swaps the entry, never accumulates")

	after := sched.NextRun()
	assert.True(t, after.Before(before), "shorter cadence moves the next run earlier")
}

func TestScheduler_RescheduleSameCadenceIsNoop(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t, &fakeClient{})

	sched, err := NewScheduler(eng, 15, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	before := sched.NextRun()
	require.NoError(t, sched.Reschedule(15))

	assert.Equal(t, before, sched.NextRun(), "same cadence keeps the pending run")
}
