package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var req contract.WeekRequest
	width := formatter.DefaultCellWidth

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"week", "cal"},
		Short:   "Show the week calendar",
		Long: `Show one week as a grid of hour rows by day columns. The week is the
one containing --date, or the first day of --month/--year, or today.
--offset then moves by whole weeks (-1 is the previous week).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			req.Now = &now
			resp, err := app.Calendar.Week(context.Background(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatWeek(resp.Grid, now.Format(domain.DateLayout), width))
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d interventions this week", resp.Total)))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&req.Date, app.now), "date", "Any date in the week (YYYY-MM-DD)")
	cmd.Flags().IntVar(&req.Offset, "offset", 0, "Weeks to move from the reference week")
	cmd.Flags().IntVar(&req.Month, "month", 0, "Jump to the week holding the first day of this month (1-12)")
	cmd.Flags().IntVar(&req.Year, "year", 0, "Year for --month (default: current year)")
	cmd.Flags().IntVar(&width, "width", width, "Column width")
	cmd.MarkFlagsMutuallyExclusive("date", "month")

	return cmd
}
