package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show service status",
		Example: `  gpud status
  gpud status --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			s, err := c.GetStatus(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			return printStatusDetail(cmd.OutOrStdout(), s)
		},
	}
}
