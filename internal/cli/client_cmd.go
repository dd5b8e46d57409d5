package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/service"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientShowCmd(app),
		newClientUpdateCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

// clientFields binds the editable client attributes to flags.
type clientFields struct {
	name, email, phone, phone2 string
	address, postalCode, city  string
	notes                      string
	kind                       domain.ClientKind
	active                     bool
}

func (f *clientFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Client name")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.phone2, "phone2", "", "Secondary phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "Street address")
	cmd.Flags().StringVar(&f.postalCode, "postal-code", "", "Postal code")
	cmd.Flags().StringVar(&f.city, "city", "", "City")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().Var(newKindValue(&f.kind), "kind", "particulier or professionnel")
}

// patch builds a ClientPatch from the flags the user actually set.
func (f *clientFields) patch(cmd *cobra.Command) service.ClientPatch {
	var p service.ClientPatch
	changed := cmd.Flags().Changed
	str := func(name string, v *string) *string {
		if changed(name) {
			return v
		}
		return nil
	}
	p.Name = str("name", &f.name)
	p.Email = str("email", &f.email)
	p.Phone = str("phone", &f.phone)
	p.Phone2 = str("phone2", &f.phone2)
	p.Address = str("address", &f.address)
	p.PostalCode = str("postal-code", &f.postalCode)
	p.City = str("city", &f.city)
	p.Notes = str("notes", &f.notes)
	if changed("kind") {
		p.Kind = &f.kind
	}
	if changed("active") {
		p.Active = &f.active
	}
	return p
}

func newClientAddCmd(app *App) *cobra.Command {
	var f clientFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Client{
				Name:       f.name,
				Email:      f.email,
				Phone:      f.phone,
				Phone2:     f.phone2,
				Address:    f.address,
				PostalCode: f.postalCode,
				City:       f.city,
				Kind:       f.kind,
				Notes:      f.notes,
			}
			if err := app.Clients.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created client %s %s",
				formatter.Bold(c.Name), formatter.Dim("("+c.ShortID()+")"))))
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	var all bool
	var search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List clients in alphabetical order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var clients []*domain.Client
			var err error
			if search != "" {
				clients, err = app.Clients.Search(ctx, search)
			} else {
				clients, err = app.Clients.List(ctx, all)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(clients) == 0 {
				fmt.Fprintln(out, formatter.Dim("No clients found."))
				return nil
			}
			fmt.Fprint(out, formatter.FormatClientList(clients))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive clients")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match name, email, phone or city")

	return cmd
}

func newClientShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <client>",
		Short: "Show a client and its interventions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Clients.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := app.Interventions.ListByClient(ctx, c.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClientDetail(c, items))
			return nil
		},
	}
}

func newClientUpdateCmd(app *App) *cobra.Command {
	var f clientFields

	cmd := &cobra.Command{
		Use:   "update <client>",
		Short: "Change client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Clients.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Clients.Update(ctx, c.ID, f.patch(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated client "+formatter.Bold(updated.Name)))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.active, "active", true, "Reactivate (true) or deactivate (false) the client")

	return cmd
}

func newClientRemoveCmd(app *App) *cobra.Command {
	var hard, yes bool

	cmd := &cobra.Command{
		Use:     "remove <client>",
		Aliases: []string{"rm"},
		Short:   "Deactivate a client, or delete it with --hard",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Clients.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if hard && !confirmDestructive(cmd, "Permanently delete "+c.Name+"?", yes) {
				return nil
			}
			if err := app.Clients.Delete(ctx, c.ID, hard); err != nil {
				return err
			}
			verb := "Deactivated"
			if hard {
				verb = "Deleted"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(verb+" client "+formatter.Bold(c.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, "Delete permanently (refused while interventions exist)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before a hard delete")

	return cmd
}
