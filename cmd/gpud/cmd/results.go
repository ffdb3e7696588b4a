package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func resultsCmd() *cobra.Command {
	resultsRoot := &cobra.Command{
		Use:   "results",
		Short: "Browse GPU results",
		Long: "Browse the current GPU result snapshot, ranked by benchmark-per-dollar\n" +
			"value with the best deals first.",
	}

	resultsRoot.AddCommand(
		resultsListCmd(),
		resultsGetCmd(),
	)

	return resultsRoot
}

func resultsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all results, best value first",
		Example: `  gpud results list
  gpud results list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			results, err := c.ListResults(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Println("No results yet. Run `gpud fetch` or wait for the next cycle.")
				return nil
			}
			return printResultsTable(cmd.OutOrStdout(), results)
		},
	}
}

func resultsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one GPU model's listings and value",
		Example: `  gpud results get "RTX 4090"
  gpud results get "RX 7900 XTX" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			r, err := c.GetResult(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), r)
			}
			return printResultDetail(cmd.OutOrStdout(), r)
		},
	}
}
