package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardLoadedMsg struct {
	view *dashboardView
	resp *contract.StatusResponse
	err  error
}

// dashboardView is the home screen: counters, today's schedule with its
// overlap warnings, and the most recent interventions. Rows are
// selectable and the selected one is detailed on the right.
type dashboardView struct {
	state   *SharedState
	resp    *contract.StatusResponse
	rows    []*domain.InterventionView // today then recent, deduplicated
	cursor  int
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle done")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add intervention")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new client")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clients")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interventions")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		req := contract.NewStatusRequest()
		now := app.now()
		req.Now = &now
		resp, err := app.Status.GetStatus(context.Background(), req)
		return dashboardLoadedMsg{view: v, resp: resp, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.view != v {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.resp = msg.resp
		v.rows = dashboardRows(msg.resp)
		if v.cursor >= len(v.rows) {
			v.cursor = max(0, len(v.rows)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.rows)-1 {
				v.cursor++
			}
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
		case "a":
			return v, pushView(newInterventionFormView(v.state, nil))
		case "n":
			return v, pushView(newClientFormView(v.state, nil))
		case "c":
			return v, pushView(newClientListView(v.state))
		case "i":
			return v, pushView(newInterventionListView(v.state, nil))
		case "w":
			return v, pushView(newWeekView(v.state))
		case "r":
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *dashboardView) selected() *domain.InterventionView {
	if v.cursor < len(v.rows) {
		return v.rows[v.cursor]
	}
	return nil
}

// dashboardRows merges today's interventions with the recent ones,
// keeping the first occurrence of each.
func dashboardRows(resp *contract.StatusResponse) []*domain.InterventionView {
	seen := make(map[string]bool)
	var rows []*domain.InterventionView
	for _, list := range [][]*domain.InterventionView{resp.Today, resp.Recent} {
		for _, it := range list {
			if !seen[it.ID] {
				seen[it.ID] = true
				rows = append(rows, it)
			}
		}
	}
	return rows
}

const dashDetailMinWidth = 160

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.resp == nil {
		return ""
	}

	var b strings.Builder
	s := v.resp.Summary
	b.WriteString(fmt.Sprintf("\n  %s %s   %s %s   %s %s   %s %s\n\n",
		formatter.Bold(fmt.Sprint(s.ActiveClients)), formatter.Dim("clients"),
		formatter.Bold(fmt.Sprint(s.Interventions)), formatter.Dim("interventions"),
		formatter.StyleYellow.Render(fmt.Sprint(s.Todo)), formatter.Dim("todo"),
		formatter.StyleRed.Render(fmt.Sprint(s.Unpaid)), formatter.Dim("unpaid"),
	))

	left := v.renderRows()
	if v.state.Width < dashDetailMinWidth {
		b.WriteString(left)
		return b.String()
	}

	leftWidth := 110
	rightWidth := max(v.state.Width-leftWidth-3, 20)
	divider := formatter.Dim("│")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(left),
		" "+divider+" ",
		lipgloss.NewStyle().Width(rightWidth).Render(v.renderDetail()),
	))
	return b.String()
}

func (v *dashboardView) renderRows() string {
	var b strings.Builder
	todayCount := len(v.resp.Today)

	b.WriteString("  " + formatter.StyleHeader.Render("TODAY") + "\n")
	if todayCount == 0 {
		b.WriteString("  " + formatter.Dim("Nothing scheduled today.") + "\n")
	}
	for i, it := range v.rows {
		if i == todayCount {
			b.WriteString("\n  " + formatter.StyleHeader.Render("RECENT") + "\n")
		}
		b.WriteString(interventionRow(it, i == v.cursor) + "\n")
	}
	if len(v.rows) == todayCount {
		b.WriteString("\n  " + formatter.StyleHeader.Render("RECENT") + "\n")
		b.WriteString("  " + formatter.Dim("No interventions recorded. Press 'a' to add one.") + "\n")
	}
	for _, w := range v.resp.Warnings {
		b.WriteString("\n" + formatter.Warning(w))
	}
	return b.String()
}

func (v *dashboardView) renderDetail() string {
	it := v.selected()
	if it == nil {
		return ""
	}
	when := formatter.RelativeDateFrom(mustDate(it.Date), v.state.App.now())
	return formatter.FormatInterventionDetail(it) + "\n  " + formatter.Dim(when)
}

// mustDate parses a stored date, falling back to the zero time.
func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return d
}
