package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier discards alerts, logging each at debug level. It stands in
// for a real backend when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendAlert logs and discards a single alert.
func (n *NoOpNotifier) SendAlert(_ context.Context, alert *AlertPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"brand", alert.Brand,
		"lowest", alert.LowestPrice,
		"threshold", alert.Threshold,
	)
	return nil
}

// SendBatchAlert logs and discards a batch of alerts.
func (n *NoOpNotifier) SendBatchAlert(_ context.Context, alerts []AlertPayload) error {
	n.log.Debug("batch notification discarded (no backend configured)", "count", len(alerts))
	return nil
}
