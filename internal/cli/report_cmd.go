package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var period string
	var from, to string
	req := contract.NewReportRequest(contract.PeriodMonth)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize activity over a period",
		Long: `Summarize interventions over the current month (default), the current
year, or a custom --from/--to range: totals, payment breakdown, top
clients and a monthly histogram.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			req.Now = &now
			req.Period = contract.ReportPeriod(period)
			if from != "" || to != "" {
				req.Period = contract.PeriodCustom
				req.From, req.To = from, to
			}

			resp, err := app.Reports.Report(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(resp))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", string(contract.PeriodMonth), "month or year")
	cmd.Flags().Var(newDateValue(&from, app.now), "from", "Custom range start (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to, app.now), "to", "Custom range end, inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&req.TopN, "top", req.TopN, "Number of top clients")
	cmd.Flags().IntVar(&req.MonthsBack, "months", req.MonthsBack, "Months in the histogram")
	cmd.Flags().BoolVar(&req.IncludeItems, "items", false, "List the period's interventions")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}
