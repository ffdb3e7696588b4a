package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fetch",
		Short:   "Trigger an immediate fetch cycle on the server",
		Example: `  gpud fetch`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			if err := c.TriggerFetch(context.Background()); err != nil {
				return err
			}
			fmt.Println("Fetch complete.")
			return nil
		},
	}
}
