package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gpudeals/gpu-deals/api/openapi"
	"github.com/gpudeals/gpu-deals/internal/alerts"
	"github.com/gpudeals/gpu-deals/internal/api/handlers"
	"github.com/gpudeals/gpu-deals/internal/api/middleware"
	"github.com/gpudeals/gpu-deals/internal/config"
	"github.com/gpudeals/gpu-deals/internal/dealsapi"
	"github.com/gpudeals/gpu-deals/internal/engine"
	"github.com/gpudeals/gpu-deals/internal/notify"
	"github.com/gpudeals/gpu-deals/internal/settings"
	"github.com/gpudeals/gpu-deals/internal/store"
	"github.com/gpudeals/gpu-deals/internal/telemetry"
	"github.com/gpudeals/gpu-deals/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and fetch scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: Version,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	mgr := settings.NewManager(st, log,
		settings.WithDefaultCadence(cfg.Deals.CadenceMinutes),
		settings.WithDefaultAPIURL(cfg.Deals.APIURL),
	)
	if err := mgr.Load(ctx); err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	alertSvc := alerts.NewService(st, log)
	if err := alertSvc.Load(ctx); err != nil {
		return fmt.Errorf("loading alerts: %w", err)
	}

	client := dealsapi.NewHTTPClient(
		dealsapi.WithTimeout(cfg.Deals.Timeout),
		dealsapi.WithRateLimit(cfg.Deals.RateLimit.PerSecond, cfg.Deals.RateLimit.Burst),
	)

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notify.DiscordWebhook != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notify.DiscordWebhook)
	}

	state := engine.NewState()
	eng := engine.NewEngine(client, mgr, state,
		engine.WithLogger(log),
		engine.WithAlertNotifier(notifier, alertSvc.List),
	)

	sched, err := engine.NewScheduler(eng, mgr.Cadence(), log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	mgr.OnCadenceChange(func(minutes int) {
		if err := sched.Reschedule(minutes); err != nil {
			log.Error("rescheduling failed", "minutes", minutes, "error", err)
		}
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	healthH := handlers.NewHealthHandler(st)
	e.GET("/healthz", healthH.Healthz)
	e.GET("/readyz", healthH.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	api := humaecho.New(e, huma.DefaultConfig("GPU Deals API", Version))
	handlers.RegisterResultRoutes(api, handlers.NewResultsHandler(state))
	handlers.RegisterStatusRoutes(api, handlers.NewStatusHandler(state, mgr, sched))
	handlers.RegisterSettingsRoutes(api, handlers.NewSettingsHandler(mgr))
	handlers.RegisterAlertRoutes(api, handlers.NewAlertsHandler(alertSvc))
	handlers.RegisterFetchRoutes(api, handlers.NewFetchHandler(eng))

	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "cadence_minutes", mgr.Cadence())

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	stopCtx := sched.Stop()
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", "error", err)
	}

	log.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "postgres":
		ps, err := store.NewPostgresStore(ctx, cfg.Store.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := ps.Migrate(ctx); err != nil {
			ps.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return ps, nil
	default:
		return store.NewFileStore(cfg.Store.File.Path), nil
	}
}
