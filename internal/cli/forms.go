package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

var errNoClients = errors.New("no active client yet: add one with new-client first")

// formErrorView shows err in a one-note form that pops back with the error.
func formErrorView(state *SharedState, title string, err error) View {
	form := newForm(huh.NewGroup(huh.NewNote().Title("Error").Description(err.Error())))
	return newWizardView(state, title, form, func() tea.Cmd {
		return outputCmd(shellError(err))
	})
}

// clientFormValues holds the fields bound to the client form.
type clientFormValues struct {
	name, email, phone, phone2 string
	address, postalCode, city  string
	notes                      string
	kind                       domain.ClientKind
}

// newClientFormView edits existing, or creates a client when it is nil.
func newClientFormView(state *SharedState, existing *domain.Client) View {
	f := clientFormValues{kind: domain.ClientIndividual}
	title := "New Client"
	if existing != nil {
		title = "Edit " + existing.Name
		f = clientFormValues{
			name: existing.Name, email: existing.Email, phone: existing.Phone, phone2: existing.Phone2,
			address: existing.Address, postalCode: existing.PostalCode, city: existing.City,
			notes: existing.Notes, kind: existing.Kind,
		}
	}

	form := newForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&f.name).Validate(validateRequired("name")),
			huh.NewSelect[domain.ClientKind]().Title("Kind").Options(kindOptions()...).Value(&f.kind),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Placeholder("optional").Value(&f.email).Validate(validateOptionalEmail),
			huh.NewInput().Title("Phone").Placeholder("optional").Value(&f.phone),
			huh.NewInput().Title("Second phone").Placeholder("optional").Value(&f.phone2),
		),
		huh.NewGroup(
			huh.NewInput().Title("Address").Placeholder("optional").Value(&f.address),
			huh.NewInput().Title("Postal code").Placeholder("optional").Value(&f.postalCode),
			huh.NewInput().Title("City").Placeholder("optional").Value(&f.city),
			huh.NewText().Title("Notes").Lines(3).Value(&f.notes),
		),
	)

	app := state.App
	done := func() tea.Cmd {
		return func() tea.Msg {
			out, err := saveClientForm(context.Background(), app, existing, f)
			if err != nil {
				return cmdOutputMsg{output: shellError(err)}
			}
			return cmdOutputMsg{output: out}
		}
	}
	return newWizardView(state, title, form, done)
}

func saveClientForm(ctx context.Context, app *App, existing *domain.Client, f clientFormValues) (string, error) {
	if existing == nil {
		c := &domain.Client{
			Name: f.name, Email: f.email, Phone: f.phone, Phone2: f.phone2,
			Address: f.address, PostalCode: f.postalCode, City: f.city,
			Notes: f.notes, Kind: f.kind,
		}
		if err := app.Clients.Create(ctx, c); err != nil {
			return "", err
		}
		return formatter.Success("Created client " + formatter.Bold(c.Name)), nil
	}
	updated, err := app.Clients.Update(ctx, existing.ID, service.ClientPatch{
		Name: &f.name, Email: &f.email, Phone: &f.phone, Phone2: &f.phone2,
		Address: &f.address, PostalCode: &f.postalCode, City: &f.city,
		Notes: &f.notes, Kind: &f.kind,
	})
	if err != nil {
		return "", err
	}
	return formatter.Success("Updated client " + formatter.Bold(updated.Name)), nil
}

// interventionFormValues holds the fields bound to the intervention form.
type interventionFormValues struct {
	clientID, numero, date string
	start, end             string
	summary, details       string
	location               domain.Location
	payment                domain.PaymentStatus
	done                   bool
}

// newInterventionFormView edits existing, or records a new intervention
// when it is nil. Overlaps found on save are shown with the result and do
// not block it.
func newInterventionFormView(state *SharedState, existing *domain.InterventionView) View {
	ctx := context.Background()
	app := state.App
	title := "New Intervention"

	clients, err := app.Clients.List(ctx, false)
	if err != nil {
		return formErrorView(state, title, err)
	}

	f := interventionFormValues{
		clientID: state.ActiveClientID,
		date:     app.now().Format(domain.DateLayout),
		location: domain.LocationOnSite,
		payment:  domain.PaymentUnpaid,
	}
	if existing != nil {
		title = "Edit " + existing.Numero
		f = interventionFormValues{
			clientID: existing.ClientID, numero: existing.Numero, date: existing.Date,
			start: existing.StartTime, end: existing.EndTime,
			summary: existing.Summary, details: existing.Details,
			location: existing.Location, payment: existing.Payment, done: existing.Done,
		}
	} else if n, err := app.Interventions.SuggestNumero(ctx); err == nil {
		f.numero = n
	}

	options := clientOptions(clients, existing)
	if len(options) == 0 {
		return formErrorView(state, title, errNoClients)
	}
	if f.clientID == "" {
		f.clientID = options[0].Value
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Client").Options(options...).Value(&f.clientID),
			huh.NewInput().Title("Numero").Value(&f.numero).Validate(validateRequired("numero")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&f.date).Validate(validateDate),
			huh.NewInput().Title("Start (HH:MM)").Placeholder("blank for all day").Value(&f.start).Validate(validateOptionalTime),
			huh.NewInput().Title("End (HH:MM)").Placeholder("blank for all day").Value(&f.end).Validate(validateEndAfter(&f.start)),
		),
		huh.NewGroup(
			huh.NewSelect[domain.Location]().Title("Location").Options(locationOptions()...).Value(&f.location),
			huh.NewSelect[domain.PaymentStatus]().Title("Payment").Options(paymentOptions()...).Value(&f.payment),
			huh.NewConfirm().Title("Done?").Affirmative("Yes").Negative("No").Value(&f.done),
		),
		huh.NewGroup(
			huh.NewInput().Title("Summary").Value(&f.summary),
			huh.NewText().Title("Details").Lines(4).Value(&f.details),
		),
	)

	done := func() tea.Cmd {
		return func() tea.Msg {
			out, err := saveInterventionForm(context.Background(), app, existing, f)
			if err != nil {
				return cmdOutputMsg{output: shellError(err)}
			}
			return cmdOutputMsg{output: out}
		}
	}
	return newWizardView(state, title, form, done)
}

// clientOptions lists active clients, plus the current client of an edited
// intervention even when it has since been deactivated.
func clientOptions(clients []*domain.Client, existing *domain.InterventionView) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(clients)+1)
	seen := false
	for _, c := range clients {
		label := c.Name
		if c.City != "" {
			label = fmt.Sprintf("%s (%s)", c.Name, c.City)
		}
		opts = append(opts, huh.NewOption(label, c.ID))
		if existing != nil && c.ID == existing.ClientID {
			seen = true
		}
	}
	if existing != nil && !seen {
		opts = append(opts, huh.NewOption(existing.ClientName+" (inactive)", existing.ClientID))
	}
	return opts
}

func saveInterventionForm(ctx context.Context, app *App, existing *domain.InterventionView, f interventionFormValues) (string, error) {
	if existing == nil {
		res, err := app.Interventions.Create(ctx, &domain.Intervention{
			ClientID: f.clientID, Numero: f.numero, Date: f.date,
			StartTime: f.start, EndTime: f.end,
			Location: f.location, Payment: f.payment, Done: f.done,
			Summary: f.summary, Details: f.details,
		})
		if err != nil {
			return "", err
		}
		return formatter.FormatSaved("Created", res.Intervention, res.Warnings), nil
	}

	res, err := app.Interventions.Update(ctx, existing.ID, service.InterventionPatch{
		ClientID: &f.clientID, Numero: &f.numero, Date: &f.date,
		StartTime: &f.start, EndTime: &f.end,
		Location: &f.location, Payment: &f.payment, Done: &f.done,
		Summary: &f.summary, Details: &f.details,
	})
	if err != nil {
		return "", err
	}
	return formatter.FormatSaved("Updated", res.Intervention, res.Warnings), nil
}

// confirmAction asks prompt and runs action when the user agrees.
func confirmAction(state *SharedState, title, prompt string, action func(ctx context.Context) (string, error)) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return pushView(newWizardView(state, title, form, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		return func() tea.Msg {
			out, err := action(context.Background())
			if err != nil {
				return cmdOutputMsg{output: shellError(err)}
			}
			return cmdOutputMsg{output: out}
		}
	}))
}
