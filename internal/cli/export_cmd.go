package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/jinzhu/now"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export interventions to other tools",
	}

	cmd.AddCommand(newExportICSCmd(app))

	return cmd
}

func newExportICSCmd(app *App) *cobra.Command {
	var from, to, output string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write interventions as an iCalendar (.ics) feed",
		Long: `Write the interventions dated --from..--to as iCalendar events.
Timed interventions become floating local-time events and all-day ones
become date events. Defaults to the current month and the two following.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if from == "" || to == "" {
				df, dt := defaultExportRange(app)
				from, to = domain.CoalesceStr(from, df), domain.CoalesceStr(to, dt)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, ferr := os.Create(output)
				if ferr != nil {
					return fmt.Errorf("creating %s: %w", output, ferr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}

			n, err := app.Export.ExportICS(context.Background(), from, to, w)
			if err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Exported %d interventions to %s", n, output)))
			}
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from, app.now), "from", "First date (default: start of this month)")
	cmd.Flags().Var(newDateValue(&to, app.now), "to", "Last date, inclusive (default: end of the month after next)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

// defaultExportRange spans the current month and the two following.
func defaultExportRange(app *App) (string, string) {
	start := now.With(app.now()).BeginningOfMonth()
	end := now.With(start.AddDate(0, 2, 0)).EndOfMonth()
	return start.Format(domain.DateLayout), end.Format(domain.DateLayout)
}
