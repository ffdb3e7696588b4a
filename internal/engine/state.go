// Package engine orchestrates fetching the pricing API on a cadence and
// holding the in-memory result snapshot the API surface reads from.
package engine

import (
	"sync"
	"time"

	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// State holds the current result snapshot and fetch bookkeeping. Results
// only ever change wholesale; a failed fetch leaves the previous snapshot
// in place.
type State struct {
	mu          sync.RWMutex
	results     []domain.ResultItem
	lastAttempt time.Time
	lastError   string
}

// NewState creates an empty State.
func NewState() *State {
	return &State{}
}

// Snapshot returns a copy of the current results sorted by calculated value,
// best first.
func (s *State) Snapshot() []domain.ResultItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ResultItem, len(s.results))
	copy(out, s.results)
	domain.SortByValue(out)
	return out
}

// Replace swaps in a new result set and clears the last error.
func (s *State) Replace(items []domain.ResultItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = items
	s.lastError = ""
}

// RecordAttempt stamps the time a fetch attempt started. The timestamp moves
// on every attempt, successful or not, so readers can tell staleness apart
// from failure.
func (s *State) RecordAttempt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAttempt = t
}

// RecordError stores the failure message of the most recent fetch. Results
// are left untouched.
func (s *State) RecordError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// LastAttempt returns the time of the most recent fetch attempt, or the zero
// time if no fetch has been attempted yet.
func (s *State) LastAttempt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAttempt
}

// LastError returns the failure message of the most recent fetch, or empty
// if it succeeded.
func (s *State) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Len returns the number of items in the current snapshot.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
