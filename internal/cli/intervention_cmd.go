package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/alexanderramin/clientpro/internal/service"
	"github.com/spf13/cobra"
)

func newInterventionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "intervention",
		Aliases: []string{"int", "interventions"},
		Short:   "Manage interventions",
	}

	cmd.AddCommand(
		newInterventionAddCmd(app),
		newInterventionListCmd(app),
		newInterventionShowCmd(app),
		newInterventionUpdateCmd(app),
		newInterventionDoneCmd(app),
		newInterventionRemoveCmd(app),
		newInterventionNextNumeroCmd(app),
		newInterventionCheckCmd(app),
	)

	return cmd
}

// interventionFields binds the editable intervention attributes to flags.
type interventionFields struct {
	client, numero, date string
	start, end           string
	summary, details     string
	location             domain.Location
	payment              domain.PaymentStatus
	done, allDay         bool
}

func (f *interventionFields) register(cmd *cobra.Command, app *App) {
	cmd.Flags().StringVarP(&f.client, "client", "c", "", "Client id, id prefix or exact name")
	cmd.Flags().StringVar(&f.numero, "numero", "", "Intervention number (default: next free INT-NNN)")
	cmd.Flags().Var(newDateValue(&f.date, app.now), "date", "Date (YYYY-MM-DD, today or tomorrow)")
	cmd.Flags().Var(newTimeValue(&f.start), "start", "Start time (HH:MM)")
	cmd.Flags().Var(newTimeValue(&f.end), "end", "End time (HH:MM)")
	cmd.Flags().Var(newLocationValue(&f.location), "location", "domicile or distance")
	cmd.Flags().Var(newPaymentValue(&f.payment), "payment", "paye, a-payer or gratuit")
	cmd.Flags().StringVar(&f.summary, "summary", "", "Short description")
	cmd.Flags().StringVar(&f.details, "details", "", "Detailed notes")
	cmd.Flags().BoolVar(&f.done, "done", false, "Mark as done")
}

func (f *interventionFields) patch(ctx context.Context, cmd *cobra.Command, app *App) (service.InterventionPatch, error) {
	var p service.InterventionPatch
	changed := cmd.Flags().Changed
	str := func(name string, v *string) *string {
		if changed(name) {
			return v
		}
		return nil
	}
	if changed("client") {
		c, err := app.Clients.Resolve(ctx, f.client)
		if err != nil {
			return p, err
		}
		p.ClientID = &c.ID
	}
	p.Numero = str("numero", &f.numero)
	p.Date = str("date", &f.date)
	p.StartTime = str("start", &f.start)
	p.EndTime = str("end", &f.end)
	p.Summary = str("summary", &f.summary)
	p.Details = str("details", &f.details)
	if changed("location") {
		p.Location = &f.location
	}
	if changed("payment") {
		p.Payment = &f.payment
	}
	if changed("done") {
		p.Done = &f.done
	}
	if f.allDay {
		empty := ""
		p.StartTime, p.EndTime = &empty, &empty
	}
	return p, nil
}

func newInterventionAddCmd(app *App) *cobra.Command {
	var f interventionFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new intervention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Clients.Resolve(ctx, f.client)
			if err != nil {
				return err
			}
			in := &domain.Intervention{
				Numero:    f.numero,
				ClientID:  c.ID,
				Date:      f.date,
				StartTime: f.start,
				EndTime:   f.end,
				Location:  f.location,
				Payment:   f.payment,
				Done:      f.done,
				Summary:   f.summary,
				Details:   f.details,
			}
			res, err := app.Interventions.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSaved("Created", res.Intervention, res.Warnings))
			return nil
		},
	}

	f.register(cmd, app)
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newInterventionListCmd(app *App) *cobra.Command {
	filter := domain.FilterAll
	var search, client string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List interventions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var items []*domain.InterventionView
			if client != "" {
				c, err := app.Clients.Resolve(ctx, client)
				if err != nil {
					return err
				}
				all, err := app.Interventions.ListByClient(ctx, c.ID)
				if err != nil {
					return err
				}
				items = keepFiltered(all, filter)
			} else {
				var err error
				if items, err = app.Interventions.List(ctx, filter, search); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, formatter.Dim("No interventions found."))
				return nil
			}
			fmt.Fprint(out, formatter.FormatInterventionList(items))
			return nil
		},
	}

	cmd.Flags().VarP(newFilterValue(&filter), "filter", "f", "all, todo, done or unpaid")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match numero, summary, details or client name")
	cmd.Flags().StringVarP(&client, "client", "c", "", "Only this client's interventions")

	return cmd
}

// keepFiltered applies a list filter to an already loaded slice.
func keepFiltered(items []*domain.InterventionView, filter domain.InterventionFilter) []*domain.InterventionView {
	if filter == domain.FilterAll {
		return items
	}
	var out []*domain.InterventionView
	for _, it := range items {
		switch filter {
		case domain.FilterDone:
			if it.Done {
				out = append(out, it)
			}
		case domain.FilterTodo:
			if !it.Done {
				out = append(out, it)
			}
		case domain.FilterUnpaid:
			if it.Payment == domain.PaymentUnpaid {
				out = append(out, it)
			}
		}
	}
	return out
}

func newInterventionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <numero|id>",
		Short: "Show one intervention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := app.Interventions.Resolve(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInterventionDetail(it))
			return nil
		},
	}
}

func newInterventionUpdateCmd(app *App) *cobra.Command {
	var f interventionFields

	cmd := &cobra.Command{
		Use:   "update <numero|id>",
		Short: "Change intervention fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := app.Interventions.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(ctx, cmd, app)
			if err != nil {
				return err
			}
			res, err := app.Interventions.Update(ctx, it.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSaved("Updated", res.Intervention, res.Warnings))
			return nil
		},
	}

	f.register(cmd, app)
	cmd.Flags().BoolVar(&f.allDay, "all-day", false, "Clear the start and end times")
	cmd.MarkFlagsMutuallyExclusive("all-day", "start")
	cmd.MarkFlagsMutuallyExclusive("all-day", "end")

	return cmd
}

func newInterventionDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <numero|id>",
		Short: "Mark an intervention as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := app.Interventions.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Interventions.SetDone(ctx, it.ID, !undo); err != nil {
				return err
			}
			state := "done"
			if undo {
				state = "todo"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s marked %s", formatter.Bold(it.Numero), state)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as todo again")

	return cmd
}

func newInterventionRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <numero|id>",
		Aliases: []string{"rm"},
		Short:   "Delete an intervention",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := app.Interventions.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			prompt := fmt.Sprintf("Delete %s (%s, %s)?", it.Numero, it.ClientName, formatter.DisplayDate(it.Date))
			if !confirmDestructive(cmd, prompt, yes) {
				return nil
			}
			if err := app.Interventions.Delete(ctx, it.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted "+formatter.Bold(it.Numero)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newInterventionNextNumeroCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next-numero",
		Short: "Print the next free intervention number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Interventions.SuggestNumero(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newInterventionCheckCmd(app *App) *cobra.Command {
	var date, start, end, exclude string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List interventions overlapping a time slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cand := scheduler.Candidate{Date: date, Start: start, End: end}
			if exclude != "" {
				it, err := app.Interventions.Resolve(ctx, exclude)
				if err != nil {
					return err
				}
				cand.ExcludeID = it.ID
			}
			conflicts, err := app.Interventions.CheckConflicts(ctx, cand)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(conflicts) == 0 {
				fmt.Fprintln(out, formatter.Success(fmt.Sprintf("No overlap on %s %s",
					formatter.DisplayDate(date), formatter.TimeRange(start, end))))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatConflicts(conflicts))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&date, app.now), "date", "Date (YYYY-MM-DD)")
	cmd.Flags().Var(newTimeValue(&start), "start", "Start time (HH:MM)")
	cmd.Flags().Var(newTimeValue(&end), "end", "End time (HH:MM)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Intervention being edited, left out of the check")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
