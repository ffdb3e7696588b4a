// Package settings mediates the user-tunable refresh cadence and API
// endpoint between the persisted store and the running scheduler.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/gpudeals/gpu-deals/internal/store"
)

// Cadence bounds in minutes.
const (
	DefaultCadenceMinutes = 15
	MinCadenceMinutes     = 1
	MaxCadenceMinutes     = 60
)

// DefaultAPIURL is the production pricing endpoint.
const DefaultAPIURL = "https://api.gpudeals.net/"

// Manager caches the persisted settings and notifies the scheduler when the
// cadence changes. A changed API URL takes effect on the next fetch; no
// notification is needed.
type Manager struct {
	store store.Store
	log   *slog.Logger

	mu      sync.RWMutex
	cadence int
	apiURL  string

	onCadenceChange func(minutes int)
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithDefaultCadence overrides the built-in startup cadence. Persisted
// values still win.
func WithDefaultCadence(minutes int) ManagerOption {
	return func(m *Manager) {
		m.cadence = clampCadence(minutes)
	}
}

// WithDefaultAPIURL overrides the built-in startup endpoint. Persisted
// values still win.
func WithDefaultAPIURL(url string) ManagerOption {
	return func(m *Manager) {
		if url != "" {
			m.apiURL = url
		}
	}
}

// NewManager creates a Manager with defaults in place until Load is called.
func NewManager(s store.Store, log *slog.Logger, opts ...ManagerOption) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		store:   s,
		log:     log,
		cadence: DefaultCadenceMinutes,
		apiURL:  DefaultAPIURL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnCadenceChange registers the callback fired after a successful cadence
// update. Must be set before the manager is shared across goroutines.
func (m *Manager) OnCadenceChange(fn func(minutes int)) {
	m.onCadenceChange = fn
}

// Load reads persisted values, keeping defaults for anything missing or
// unreadable. Defaults are not written back; only explicit changes persist.
func (m *Manager) Load(ctx context.Context) error {
	raw, err := m.store.Get(ctx, store.KeyCadence)
	switch {
	case err == nil:
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			m.log.Warn("stored cadence unreadable, keeping default", "value", raw)
		} else {
			m.mu.Lock()
			m.cadence = clampCadence(n)
			m.mu.Unlock()
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		return fmt.Errorf("loading cadence: %w", err)
	}

	raw, err = m.store.Get(ctx, store.KeyAPIURL)
	switch {
	case err == nil && raw != "":
		m.mu.Lock()
		m.apiURL = raw
		m.mu.Unlock()
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("loading api url: %w", err)
	}

	return nil
}

// Cadence returns the refresh interval in minutes.
func (m *Manager) Cadence() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cadence
}

// SetCadence clamps minutes to [1, 60], persists it, and fires the cadence
// change callback so the scheduler re-arms immediately.
func (m *Manager) SetCadence(ctx context.Context, minutes int) error {
	minutes = clampCadence(minutes)

	if err := m.store.Set(ctx, store.KeyCadence, strconv.Itoa(minutes)); err != nil {
		return fmt.Errorf("saving cadence: %w", err)
	}

	m.mu.Lock()
	m.cadence = minutes
	m.mu.Unlock()

	m.log.Info("cadence updated", "minutes", minutes)
	if m.onCadenceChange != nil {
		m.onCadenceChange(minutes)
	}
	return nil
}

// APIURL returns the configured pricing endpoint.
func (m *Manager) APIURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.apiURL
}

// SetAPIURL persists the endpoint. Validity is checked at fetch time, not
// here; a malformed URL fails fast on the next fetch without a network call.
func (m *Manager) SetAPIURL(ctx context.Context, url string) error {
	if err := m.store.Set(ctx, store.KeyAPIURL, url); err != nil {
		return fmt.Errorf("saving api url: %w", err)
	}

	m.mu.Lock()
	m.apiURL = url
	m.mu.Unlock()

	m.log.Info("api url updated", "url", url)
	return nil
}

func clampCadence(minutes int) int {
	if minutes < MinCadenceMinutes {
		return MinCadenceMinutes
	}
	if minutes > MaxCadenceMinutes {
		return MaxCadenceMinutes
	}
	return minutes
}
