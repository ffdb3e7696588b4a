package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gpudeals/gpu-deals/internal/metrics"
)

// Scheduler runs the fetch cycle on the configured cadence. There is always
// exactly one cron entry; changing the cadence swaps it out.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	minutes int
}

// NewScheduler creates a Scheduler running engine fetches every `minutes`
// minutes.
func NewScheduler(eng *Engine, minutes int, log *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		engine: eng,
		log:    log,
	}

	id, err := s.cron.AddFunc(spec(minutes), s.runFetch)
	if err != nil {
		return nil, fmt.Errorf("adding fetch entry: %w", err)
	}
	s.entryID = id
	s.minutes = minutes
	metrics.SchedulerCadenceMinutes.Set(float64(minutes))

	return s, nil
}

// Start begins running scheduled fetches and kicks off an immediate one so
// fresh results appear without waiting a full cadence interval.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "cadence_minutes", s.Cadence())
	s.cron.Start()
	go s.runFetch()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Reschedule replaces the fetch entry with one running every `minutes`
// minutes. The new interval counts from now, not from the last fetch.
func (s *Scheduler) Reschedule(minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if minutes == s.minutes {
		return nil
	}

	id, err := s.cron.AddFunc(spec(minutes), s.runFetch)
	if err != nil {
		return fmt.Errorf("adding fetch entry: %w", err)
	}
	s.cron.Remove(s.entryID)
	s.entryID = id
	s.minutes = minutes

	metrics.SchedulerCadenceMinutes.Set(float64(minutes))
	s.log.Info("scheduler rescheduled", "cadence_minutes", minutes)
	return nil
}

// Cadence returns the current fetch interval in minutes.
func (s *Scheduler) Cadence() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minutes
}

// NextRun returns the time of the next scheduled fetch, or the zero time if
// the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entryID
	s.mu.Unlock()
	return s.cron.Entry(id).Next
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runFetch() {
	ctx := context.Background()
	if err := s.engine.RunFetch(ctx); err != nil {
		s.log.Error("scheduled fetch failed", "error", err)
	}
	if next := s.NextRun(); !next.IsZero() {
		metrics.SchedulerNextRun.Set(float64(next.Unix()))
	}
}

func spec(minutes int) string {
	return "@every " + (time.Duration(minutes) * time.Minute).String()
}
