package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gpudeals/gpu-deals/internal/config"
	"github.com/gpudeals/gpu-deals/internal/store"
	"github.com/gpudeals/gpu-deals/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Long: "Applies pending SQL migrations to the PostgreSQL settings store. " +
		"Only meaningful when store.backend is postgres.",
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Store.Backend != "postgres" {
		return fmt.Errorf("store.backend is %q; migrations only apply to postgres", cfg.Store.Backend)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Store.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := store.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations applied", "database", cfg.Store.Database.Name)
	return nil
}
