// Package store defines the persisted settings abstraction for the tracker.
// All business logic depends on the Store interface, never on concrete
// implementations, so tests run against the file backend (or an in-memory
// fake) without a running database.
package store

import (
	"context"
	"errors"
)

// Setting keys used by the application.
const (
	KeyAlerts  = "alerts"
	KeyCadence = "cadence"
	KeyAPIURL  = "apiUrl"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("setting not found")

// Store is a string-valued key-value settings store. Writes replace the
// whole value atomically; there is no partial update.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close()
}
