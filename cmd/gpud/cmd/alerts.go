package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/gpudeals/gpu-deals/internal/api/client"
)

func alertsCmd() *cobra.Command {
	alertsRoot := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price alerts",
		Long: "Manage price alerts. The server keeps one flat list; `set` replaces\n" +
			"the whole list with the alerts you pass.",
	}

	alertsRoot.AddCommand(
		alertsListCmd(),
		alertsSetCmd(),
		alertsClearCmd(),
	)

	return alertsRoot
}

func alertsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured alerts",
		Example: `  gpud alerts list
  gpud alerts list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			alerts, err := c.ListAlerts(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), alerts)
			}
			if len(alerts) == 0 {
				fmt.Println("No alerts configured.")
				return nil
			}
			return printAlertsTable(cmd.OutOrStdout(), alerts)
		},
	}
}

func alertsSetCmd() *cobra.Command {
	var alertArgs []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the alert list",
		Long: "Replace the whole alert list. Each --alert takes the form\n" +
			"BRAND=PRICE@HH:mm, e.g. \"RTX 4090=1500@23:59\".",
		Example: `  gpud alerts set --alert "RTX 4090=1500@23:59"
  gpud alerts set --alert "RTX 4090=1400@21:00" --alert "RX 7900 XTX=850@23:59"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(alertArgs) == 0 {
				return fmt.Errorf("at least one --alert is required (use `alerts clear` to remove all)")
			}
			alerts, err := parseAlertArgs(alertArgs)
			if err != nil {
				return err
			}
			c := newClient()
			stored, err := c.ReplaceAlerts(context.Background(), alerts)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), stored)
			}
			fmt.Printf("%d alert(s) set.\n", len(stored))
			return printAlertsTable(cmd.OutOrStdout(), stored)
		},
	}
	cmd.Flags().StringArrayVar(&alertArgs, "alert", nil, "alert spec (BRAND=PRICE@HH:mm)")

	return cmd
}

func alertsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Remove all alerts",
		Example: `  gpud alerts clear`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if _, err := c.ReplaceAlerts(context.Background(), []apiclient.Alert{}); err != nil {
				return err
			}
			fmt.Println("All alerts removed.")
			return nil
		},
	}
}

func parseAlertArgs(specs []string) ([]apiclient.Alert, error) {
	alerts := make([]apiclient.Alert, 0, len(specs))
	for _, spec := range specs {
		brand, rest, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid alert %q: want BRAND=PRICE@HH:mm", spec)
		}
		priceText, end, ok := strings.Cut(rest, "@")
		if !ok {
			return nil, fmt.Errorf("invalid alert %q: want BRAND=PRICE@HH:mm", spec)
		}
		price, err := strconv.Atoi(priceText)
		if err != nil {
			return nil, fmt.Errorf("invalid alert %q: price %q is not a whole number", spec, priceText)
		}
		alerts = append(alerts, apiclient.Alert{
			Brand:       strings.TrimSpace(brand),
			Price:       price,
			EndDateTime: end,
		})
	}
	return alerts, nil
}
