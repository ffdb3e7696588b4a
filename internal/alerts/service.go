package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gpudeals/gpu-deals/internal/store"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// Service owns the in-memory alert list and keeps it in sync with the
// settings store. The only mutation is a full-list replace; there are no
// partial updates.
type Service struct {
	store store.Store
	log   *slog.Logger

	mu     sync.RWMutex
	alerts []domain.Alert
}

// NewService creates a Service backed by the given settings store.
func NewService(s store.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: s, log: log}
}

// Load populates the in-memory list from the store. An empty, missing, or
// undecodable stored value falls back to the built-in defaults, which are
// persisted back immediately. The substitute-defaults decision lives here,
// not in the codec.
func (s *Service) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, store.KeyAlerts)
	switch {
	case errors.Is(err, store.ErrNotFound), err == nil && raw == "":
		s.log.Info("no stored alerts, using defaults")
		return s.Replace(ctx, Defaults())
	case err != nil:
		return fmt.Errorf("loading alerts: %w", err)
	}

	decoded, err := Decode([]byte(raw))
	if err != nil {
		s.log.Warn("stored alerts unreadable, using defaults", "error", err)
		return s.Replace(ctx, Defaults())
	}

	s.mu.Lock()
	s.alerts = decoded
	s.mu.Unlock()
	return nil
}

// List returns a copy of the current alert list.
func (s *Service) List() []domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Replace swaps in a new alert list and persists it. Alerts without an ID
// get a fresh one; IDs never round-trip through storage either way.
func (s *Service) Replace(ctx context.Context, alerts []domain.Alert) error {
	for i := range alerts {
		if alerts[i].ID == "" {
			alerts[i].ID = uuid.NewString()
		}
	}

	data, err := Encode(alerts)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, store.KeyAlerts, string(data)); err != nil {
		return fmt.Errorf("saving alerts: %w", err)
	}

	s.mu.Lock()
	s.alerts = alerts
	s.mu.Unlock()
	return nil
}
