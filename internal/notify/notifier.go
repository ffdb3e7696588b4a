// Package notify defines the notification interface and implementations
// for price alert delivery.
package notify

import "context"

// AlertPayload contains the data needed to send a price alert notification.
type AlertPayload struct {
	Brand       string  // alert brand, matches a result ID
	Threshold   int     // alert price in whole dollars
	LowestPrice float64 // current lowest listing price
	Value       int     // benchmark-per-dollar score, 0 when unknown
	Store       string  // retailer carrying the lowest price
	URL         string  // listing URL at that retailer
	EndsAt      string  // daily cutoff, "HH:mm"
}

// Notifier defines the interface for sending price alert notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload) error
}
