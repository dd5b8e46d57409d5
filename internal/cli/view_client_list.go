package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type clientsLoadedMsg struct {
	view    *clientListView
	clients []*domain.Client
	err     error
}

// clientListView lists clients with an inline filter. Selecting a client
// makes it the active one and opens its interventions.
type clientListView struct {
	state        *SharedState
	all          []*domain.Client
	visible      []*domain.Client
	cursor       int
	showInactive bool
	filtering    bool
	filter       string
	loading      bool
	err          error
}

func newClientListView(state *SharedState) *clientListView {
	return &clientListView{state: state, loading: true}
}

func (v *clientListView) ID() ViewID    { return ViewClientList }
func (v *clientListView) Title() string { return "Clients" }

// CapturesInput is true while the filter line is being edited.
func (v *clientListView) CapturesInput() bool { return v.filtering }

func (v *clientListView) ShortHelp() []key.Binding {
	if v.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "interventions")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add intervention")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "deactivate")),
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy contact")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "inactive")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *clientListView) Init() tea.Cmd { return v.loadClients() }

func (v *clientListView) loadClients() tea.Cmd {
	app, inactive := v.state.App, v.showInactive
	return func() tea.Msg {
		clients, err := app.Clients.List(context.Background(), inactive)
		return clientsLoadedMsg{view: v, clients: clients, err: err}
	}
}

func (v *clientListView) applyFilter() {
	v.visible = v.visible[:0]
	for _, c := range v.all {
		if matchesFold(v.filter, c.Name, c.City, c.Email, c.Phone) {
			v.visible = append(v.visible, c)
		}
	}
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
}

func (v *clientListView) selected() *domain.Client {
	if v.cursor < len(v.visible) {
		return v.visible[v.cursor]
	}
	return nil
}

func (v *clientListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsLoadedMsg:
		if msg.view != v {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.all = msg.clients
			v.applyFilter()
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadClients()

	case tea.KeyMsg:
		if v.filtering {
			v.filter, v.filtering = editFilter(v.filter, msg.String())
			v.applyFilter()
			return v, nil
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *clientListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.visible)-1 {
			v.cursor++
		}
	case "/":
		v.filtering = true
	case "v":
		v.showInactive = !v.showInactive
		return v, v.loadClients()
	case "n":
		return v, pushView(newClientFormView(v.state, nil))
	case "enter":
		if c := v.selected(); c != nil {
			v.state.SetActiveClient(c)
			id := c.ID
			return v, pushView(newInterventionListView(v.state, &id))
		}
	case "a":
		if c := v.selected(); c != nil {
			v.state.SetActiveClient(c)
			return v, pushView(newInterventionFormView(v.state, nil))
		}
	case "e":
		if c := v.selected(); c != nil {
			return v, pushView(newClientFormView(v.state, c))
		}
	case "x":
		if c := v.selected(); c != nil && c.Active {
			return v, v.deactivate(c)
		}
	case "y":
		if c := v.selected(); c != nil {
			return v, v.copyContact(c)
		}
	}
	return v, nil
}

func (v *clientListView) deactivate(c *domain.Client) tea.Cmd {
	id, name := c.ID, c.Name
	app := v.state.App
	return confirmAction(v.state, "Deactivate Client",
		fmt.Sprintf("Deactivate %s? Their interventions are kept.", name),
		func(ctx context.Context) (string, error) {
			if err := app.Clients.Delete(ctx, id, false); err != nil {
				return "", err
			}
			if v.state.ActiveClientID == id {
				v.state.ClearClientContext()
			}
			return formatter.Success(name + " deactivated"), nil
		})
}

// copyContact puts the client's phone, or else their email, on the
// clipboard.
func (v *clientListView) copyContact(c *domain.Client) tea.Cmd {
	contact := domain.CoalesceStr(c.Phone, c.Phone2, c.Email)
	if contact == "" {
		return outputCmd(formatter.Warning(c.Name + " has no phone or email"))
	}
	if err := v.state.CopyToClipboard(contact); err != nil {
		return outputCmd(shellError(fmt.Errorf("copy to clipboard: %w", err)))
	}
	return outputCmd(formatter.Success("Copied " + contact))
}

func (v *clientListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading clients...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.filtering || v.filter != "" {
		b.WriteString(filterPrompt(v.filter))
	}
	if len(v.visible) == 0 {
		if len(v.all) == 0 {
			b.WriteString("  " + formatter.Dim("No clients yet. Press 'n' to add one.") + "\n")
		} else {
			b.WriteString("  " + formatter.Dim("No client matches the filter.") + "\n")
		}
		return b.String()
	}

	height := v.state.ContentHeight() - 2
	if v.filtering || v.filter != "" {
		height -= 2
	}
	start, end := listWindow(v.cursor, len(v.visible), height)
	for i := start; i < end; i++ {
		b.WriteString(clientRow(v.visible[i], i == v.cursor) + "\n")
	}
	if end-start < len(v.visible) {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d/%d", v.cursor+1, len(v.visible))) + "\n")
	}
	return b.String()
}

func clientRow(c *domain.Client, selected bool) string {
	name := padRight(c.Name, 26)
	if selected {
		name = formatter.Bold(name)
	}
	if !c.Active {
		name = formatter.Dim(padRight(c.Name+" (inactive)", 26))
	}
	return fmt.Sprintf("%s%s %s  %s  %s",
		cursorMark(selected),
		name,
		padRight(formatter.KindBadge(c.Kind), 14),
		padRight(c.Phone, 16),
		formatter.Dim(c.City),
	)
}
