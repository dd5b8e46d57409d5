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

type interventionsLoadedMsg struct {
	view  *interventionListView
	items []*domain.InterventionView
	err   error
}

// interventionListView lists interventions, optionally scoped to one
// client, with filter tabs and a free-text search.
type interventionListView struct {
	state     *SharedState
	clientID  *string
	filter    domain.InterventionFilter
	term      string
	searching bool
	items     []*domain.InterventionView
	cursor    int
	loading   bool
	err       error
}

func newInterventionListView(state *SharedState, clientID *string) *interventionListView {
	return &interventionListView{state: state, clientID: clientID, filter: domain.FilterAll, loading: true}
}

func (v *interventionListView) ID() ViewID { return ViewInterventionList }

func (v *interventionListView) Title() string {
	if v.clientID != nil && v.state.ActiveClientID == *v.clientID && v.state.ActiveClientName != "" {
		return v.state.ActiveClientName
	}
	return "Interventions"
}

func (v *interventionListView) CapturesInput() bool { return v.searching }

func (v *interventionListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "payment")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *interventionListView) Init() tea.Cmd { return v.loadItems() }

func (v *interventionListView) loadItems() tea.Cmd {
	app := v.state.App
	filter, term := v.filter, v.term
	var clientID string
	if v.clientID != nil {
		clientID = *v.clientID
	}
	return func() tea.Msg {
		ctx := context.Background()
		if clientID == "" {
			items, err := app.Interventions.List(ctx, filter, term)
			return interventionsLoadedMsg{view: v, items: items, err: err}
		}
		items, err := app.Interventions.ListByClient(ctx, clientID)
		if err != nil {
			return interventionsLoadedMsg{view: v, err: err}
		}
		items = keepFiltered(items, filter)
		if term != "" {
			var matched []*domain.InterventionView
			for _, it := range items {
				if matchesFold(term, it.Numero, it.Summary, it.Details) {
					matched = append(matched, it)
				}
			}
			items = matched
		}
		return interventionsLoadedMsg{view: v, items: items}
	}
}

func (v *interventionListView) selected() *domain.InterventionView {
	if v.cursor < len(v.items) {
		return v.items[v.cursor]
	}
	return nil
}

func (v *interventionListView) shiftFilter(delta int) tea.Cmd {
	n := len(domain.InterventionFilters)
	for i, f := range domain.InterventionFilters {
		if f == v.filter {
			v.filter = domain.InterventionFilters[(i+delta+n)%n]
			break
		}
	}
	v.cursor = 0
	return v.loadItems()
}

func (v *interventionListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case interventionsLoadedMsg:
		if msg.view != v {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.items = msg.items
			if v.cursor >= len(v.items) {
				v.cursor = max(0, len(v.items)-1)
			}
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadItems()

	case tea.KeyMsg:
		if v.searching {
			prev := v.term
			v.term, v.searching = editFilter(v.term, msg.String())
			if !v.searching || v.term != prev {
				v.cursor = 0
				return v, v.loadItems()
			}
			return v, nil
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *interventionListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case "tab":
		return v, v.shiftFilter(1)
	case "shift+tab":
		return v, v.shiftFilter(-1)
	case "/":
		v.searching = true
	case "a":
		return v, pushView(newInterventionFormView(v.state, nil))
	case "enter":
		if it := v.selected(); it != nil {
			return v, outputCmd(formatter.FormatInterventionDetail(it))
		}
	case "e":
		if it := v.selected(); it != nil {
			return v, pushView(newInterventionFormView(v.state, it))
		}
	case "d":
		if it := v.selected(); it != nil {
			return v, toggleDoneCmd(v.state, it)
		}
	case "p":
		if it := v.selected(); it != nil {
			return v, cyclePaymentCmd(v.state, it)
		}
	case "x":
		if it := v.selected(); it != nil {
			return v, v.remove(it)
		}
	}
	return v, nil
}

func (v *interventionListView) remove(it *domain.InterventionView) tea.Cmd {
	id, numero := it.ID, it.Numero
	app := v.state.App
	return confirmAction(v.state, "Delete Intervention",
		fmt.Sprintf("Delete %s for %s? This cannot be undone.", numero, it.ClientName),
		func(ctx context.Context) (string, error) {
			if err := app.Interventions.Delete(ctx, id); err != nil {
				return "", err
			}
			return formatter.Success(numero + " deleted"), nil
		})
}

func (v *interventionListView) renderTabs() string {
	tabs := make([]string, 0, len(domain.InterventionFilters))
	for _, f := range domain.InterventionFilters {
		label := " " + string(f) + " "
		if f == v.filter {
			tabs = append(tabs, formatter.StyleHeader.Render("["+string(f)+"]"))
		} else {
			tabs = append(tabs, formatter.Dim(label))
		}
	}
	return "  " + strings.Join(tabs, " ") + "\n\n"
}

func (v *interventionListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading interventions...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	var b strings.Builder
	b.WriteString("\n" + v.renderTabs())
	used := 4
	if v.searching || v.term != "" {
		b.WriteString(filterPrompt(v.term))
		used += 2
	}
	if len(v.items) == 0 {
		b.WriteString("  " + formatter.Dim("No interventions. Press 'a' to add one.") + "\n")
		return b.String()
	}

	start, end := listWindow(v.cursor, len(v.items), v.state.ContentHeight()-used)
	for i := start; i < end; i++ {
		b.WriteString(interventionRow(v.items[i], i == v.cursor) + "\n")
	}
	if end-start < len(v.items) {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d/%d", v.cursor+1, len(v.items))) + "\n")
	}
	return b.String()
}
