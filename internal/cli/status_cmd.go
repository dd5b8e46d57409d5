package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard: counters, today and recent interventions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewStatusRequest()
			now := app.now()
			req.Now = &now
			if cmd.Flags().Changed("recent") {
				req.RecentLimit = recent
			}

			resp, err := app.Status.GetStatus(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 5, "Number of recent interventions to show")

	return cmd
}
