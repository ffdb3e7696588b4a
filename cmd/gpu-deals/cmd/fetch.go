package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpudeals/gpu-deals/internal/config"
	"github.com/gpudeals/gpu-deals/internal/dealsapi"
	"github.com/gpudeals/gpu-deals/internal/engine"
	"github.com/gpudeals/gpu-deals/internal/settings"
	"github.com/gpudeals/gpu-deals/pkg/logger"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run a single fetch cycle and print the results",
	Long: "Fetches the pricing endpoint once using the persisted settings " +
		"(or config-file fallbacks) and prints the ranked results. Useful for " +
		"verifying connectivity without starting the server.",
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

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

	client := dealsapi.NewHTTPClient(
		dealsapi.WithTimeout(cfg.Deals.Timeout),
		dealsapi.WithRateLimit(cfg.Deals.RateLimit.PerSecond, cfg.Deals.RateLimit.Burst),
	)

	state := engine.NewState()
	eng := engine.NewEngine(client, mgr, state, engine.WithLogger(log))

	if err := eng.RunFetch(ctx); err != nil {
		return fmt.Errorf("fetching results: %w", err)
	}

	out := cobraCmd.OutOrStdout()
	results := state.Snapshot()
	fmt.Fprintf(out, "Fetched %d results from %s\n\n", len(results), mgr.APIURL())
	for _, r := range results {
		line := fmt.Sprintf("%-16s %-10s benchmark=%d listings=%d", r.ID, r.Vendor, r.Benchmark, len(r.Listings))
		if lowest, ok := r.LowestPrice(); ok {
			line += fmt.Sprintf(" lowest=$%.2f", lowest)
		}
		if value, ok := r.CalculatedValue(); ok {
			line += fmt.Sprintf(" value=%d", value)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
