package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	settingsRoot := &cobra.Command{
		Use:   "settings",
		Short: "View and change server settings",
		Long: "View and change the server's refresh cadence and pricing endpoint.\n" +
			"Changes persist across server restarts.",
	}

	settingsRoot.AddCommand(
		cadenceCmd(),
		urlCmd(),
	)

	return settingsRoot
}

func cadenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cadence [minutes]",
		Short: "Get or set the refresh cadence",
		Long: "Without arguments, prints the current cadence. With a minutes value,\n" +
			"sets it. The server clamps the cadence to the 1-60 minute range and\n" +
			"restarts the interval from now.",
		Example: `  gpud settings cadence
  gpud settings cadence 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			ctx := context.Background()

			if len(args) == 0 {
				minutes, err := c.GetCadence(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Cadence: every %d minutes\n", minutes)
				return nil
			}

			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be a whole number, got %q", args[0])
			}
			applied, err := c.SetCadence(ctx, minutes)
			if err != nil {
				return err
			}
			fmt.Printf("Cadence set: every %d minutes\n", applied)
			return nil
		},
	}
}

func urlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url [url]",
		Short: "Get or set the pricing endpoint",
		Long: "Without arguments, prints the pricing endpoint the server polls.\n" +
			"With a URL, sets it. The URL is stored as given and validated when\n" +
			"the next fetch runs.",
		Example: `  gpud settings url
  gpud settings url https://api.gpudeals.net/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			ctx := context.Background()

			if len(args) == 0 {
				url, err := c.GetAPIURL(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Endpoint: %s\n", url)
				return nil
			}

			applied, err := c.SetAPIURL(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Endpoint set: %s\n", applied)
			return nil
		},
	}
}
