package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/contract"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type weekLoadedMsg struct {
	view *weekView
	resp *contract.WeekResponse
	err  error
}

// weekView shows the Monday-Sunday grid, paged by whole weeks.
type weekView struct {
	state   *SharedState
	offset  int
	resp    *contract.WeekResponse
	loading bool
	err     error
}

func newWeekView(state *SharedState) *weekView {
	return &weekView{state: state, loading: true}
}

func (v *weekView) ID() ViewID    { return ViewWeek }
func (v *weekView) Title() string { return "Week" }

func (v *weekView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "previous")),
		key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *weekView) Init() tea.Cmd { return v.loadWeek() }

func (v *weekView) loadWeek() tea.Cmd {
	app, offset := v.state.App, v.offset
	return func() tea.Msg {
		now := app.now()
		resp, err := app.Calendar.Week(context.Background(), contract.WeekRequest{Now: &now, Offset: offset})
		return weekLoadedMsg{view: v, resp: resp, err: err}
	}
}

func (v *weekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		if msg.view != v {
			return v, nil
		}
		v.loading = false
		v.resp, v.err = msg.resp, msg.err
		return v, nil

	case refreshViewMsg:
		return v, v.loadWeek()

	case tea.KeyMsg:
		switch msg.String() {
		case "h", "left":
			v.offset--
			return v, v.loadWeek()
		case "l", "right":
			v.offset++
			return v, v.loadWeek()
		case "t":
			if v.offset != 0 {
				v.offset = 0
				return v, v.loadWeek()
			}
		case "a":
			return v, pushView(newInterventionFormView(v.state, nil))
		}
	}
	return v, nil
}

// cellWidth fits seven day columns next to the hour column.
func (v *weekView) cellWidth() int {
	if v.state.Width <= 0 {
		return formatter.DefaultCellWidth
	}
	return max(6, (v.state.Width-6)/7)
}

func (v *weekView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading week...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}
	if v.resp == nil {
		return ""
	}
	today := domain.DateOnly(v.state.App.now()).Format(domain.DateLayout)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatWeek(v.resp.Grid, today, v.cellWidth()))
	b.WriteString(formatter.Dim(fmt.Sprintf("  %d interventions this week", v.resp.Total)) + "\n")
	return b.String()
}
