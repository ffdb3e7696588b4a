package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gpudeals/gpu-deals/internal/dealsapi"
	"github.com/gpudeals/gpu-deals/internal/metrics"
	"github.com/gpudeals/gpu-deals/internal/notify"
	"github.com/gpudeals/gpu-deals/internal/settings"
	domain "github.com/gpudeals/gpu-deals/pkg/types"
)

// ErrFetchInProgress is returned when a manual fetch is requested while a
// fetch is already running.
var ErrFetchInProgress = errors.New("fetch already in progress")

// tracerName is the instrumentation scope for fetch spans. The tracer is
// resolved per fetch so the provider installed at startup is the one used.
const tracerName = "github.com/gpudeals/gpu-deals/internal/engine"

// Engine drives fetches against the pricing API and publishes results into
// the shared State.
type Engine struct {
	client   dealsapi.Client
	settings *settings.Manager
	state    *State
	log      *slog.Logger

	notifier  notify.Notifier
	alertList func() []domain.Alert
	// fired tracks alerts already notified this run of the process so a
	// still-matching alert does not re-fire every cycle. Keys clear when
	// the condition stops matching, so a price that recovers and drops
	// again alerts again. Only touched under the inFlight guard.
	fired map[string]bool

	inFlight atomic.Bool
	nowFunc  func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// WithAlertNotifier enables price alert delivery after successful fetches.
// list supplies the current alert configuration.
func WithAlertNotifier(n notify.Notifier, list func() []domain.Alert) EngineOption {
	return func(e *Engine) {
		e.notifier = n
		e.alertList = list
	}
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	client dealsapi.Client,
	mgr *settings.Manager,
	state *State,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		client:   client,
		settings: mgr,
		state:    state,
		log:      slog.Default(),
		nowFunc:  time.Now,
		fired:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// State returns the shared result state.
func (eng *Engine) State() *State {
	return eng.state
}

// RunFetch performs one fetch cycle: stamp the attempt, call the pricing
// API, and replace the snapshot on success. A failure of any kind leaves
// the previous results in place. Overlapping calls coalesce; the second
// caller gets ErrFetchInProgress instead of queueing a duplicate fetch.
func (eng *Engine) RunFetch(ctx context.Context) error {
	if !eng.inFlight.CompareAndSwap(false, true) {
		eng.log.Info("fetch already running, skipping")
		metrics.FetchSkippedTotal.Inc()
		return ErrFetchInProgress
	}
	defer eng.inFlight.Store(false)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "engine.fetch")
	defer span.End()

	start := eng.nowFunc()
	// The attempt is stamped before the fetch so a hung request still
	// shows up as a recent attempt.
	eng.state.RecordAttempt(start)
	metrics.LastFetchAttempt.Set(float64(start.Unix()))
	defer func() {
		metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	url := eng.settings.APIURL()
	span.SetAttributes(attribute.String("fetch.url", url))

	items, err := eng.client.FetchResults(ctx, url)
	if err != nil {
		eng.state.RecordError(err.Error())
		metrics.FetchErrorsTotal.WithLabelValues(classifyFetchError(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, classifyFetchError(err))
		eng.log.Error("fetch failed", "url", url, "error", err)
		return err
	}

	eng.state.Replace(items)
	metrics.ResultItems.Set(float64(len(items)))
	span.SetAttributes(attribute.Int("fetch.items", len(items)))
	eng.log.Info("fetch complete", "url", url, "items", len(items))

	if eng.notifier != nil && eng.alertList != nil {
		eng.notifyAlerts(ctx, items)
	}
	return nil
}

func (eng *Engine) notifyAlerts(ctx context.Context, items []domain.ResultItem) {
	payloads := notify.Evaluate(eng.alertList(), items, eng.nowFunc())

	matching := make(map[string]bool, len(payloads))
	fresh := payloads[:0]
	for i := range payloads {
		key := alertKey(&payloads[i])
		matching[key] = true
		if !eng.fired[key] {
			fresh = append(fresh, payloads[i])
		}
	}
	for key := range eng.fired {
		if !matching[key] {
			delete(eng.fired, key)
		}
	}
	if len(fresh) == 0 {
		return
	}

	if err := eng.notifier.SendBatchAlert(ctx, fresh); err != nil {
		metrics.AlertNotifyErrorsTotal.Inc()
		eng.log.Warn("alert notification failed", "count", len(fresh), "error", err)
		return
	}
	for i := range fresh {
		eng.fired[alertKey(&fresh[i])] = true
	}
	metrics.AlertNotificationsTotal.Add(float64(len(fresh)))
	eng.log.Info("alert notifications sent", "count", len(fresh))
}

func alertKey(p *notify.AlertPayload) string {
	return fmt.Sprintf("%s|%d", p.Brand, p.Threshold)
}

func classifyFetchError(err error) string {
	var statusErr *dealsapi.StatusError
	switch {
	case errors.Is(err, dealsapi.ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, dealsapi.ErrDecode):
		return "decode"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "request"
	}
}
