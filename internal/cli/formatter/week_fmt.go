package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// DefaultCellWidth fits a numero and a few letters of client name.
const DefaultCellWidth = 12

const hourColWidth = 6

// FormatWeek renders the grid as hour rows by day columns with an all-day
// lane on top. A cell holding several interventions shows the first and a
// "+n" count. today marks its column header.
func FormatWeek(g scheduler.WeekGrid, today string, cellWidth int) string {
	if cellWidth < 6 {
		cellWidth = DefaultCellWidth
	}
	var b strings.Builder

	title := fmt.Sprintf("Week of %s → %s", g.Start.Format("02/01/2006"), g.End().Format("02/01/2006"))
	b.WriteString(StyleHeader.Render(title) + "\n\n")

	b.WriteString(pad("", hourColWidth))
	for day := 0; day < scheduler.DaysPerWeek; day++ {
		d := g.Day(day)
		label := DayLabel(d)
		if d.Format(domain.DateLayout) == today {
			b.WriteString(pad(StyleGreen.Bold(true).Render(label), cellWidth))
		} else {
			b.WriteString(pad(StyleHeader.Render(label), cellWidth))
		}
	}
	b.WriteString("\n")

	b.WriteString(pad(Dim("jour"), hourColWidth))
	for day := 0; day < scheduler.DaysPerWeek; day++ {
		b.WriteString(pad(cellText(g.AllDay[day], cellWidth), cellWidth))
	}
	b.WriteString("\n")
	b.WriteString(Dim(strings.Repeat("─", hourColWidth+cellWidth*scheduler.DaysPerWeek)) + "\n")

	for _, hour := range g.Hours.Hours() {
		b.WriteString(pad(Dim(fmt.Sprintf("%02dh", hour)), hourColWidth))
		for day := 0; day < scheduler.DaysPerWeek; day++ {
			b.WriteString(pad(cellText(g.Cell(day, hour), cellWidth), cellWidth))
		}
		b.WriteString("\n")
	}

	if len(g.Hidden) > 0 {
		var labels []string
		for _, it := range g.Hidden {
			labels = append(labels, fmt.Sprintf("%s %s %s", it.Numero, DisplayDate(it.Date), it.StartTime))
		}
		b.WriteString("\n" + Warning(fmt.Sprintf("%d outside %02dh-%02dh: %s",
			len(g.Hidden), g.Hours.First, g.Hours.Last, strings.Join(labels, ", "))) + "\n")
	}
	return b.String()
}

func cellText(items []*domain.InterventionView, width int) string {
	if len(items) == 0 {
		return Dim("·")
	}
	first := items[0]
	text := first.Numero
	if first.ClientName != "" {
		text += " " + first.ClientName
	}
	more := ""
	if len(items) > 1 {
		more = fmt.Sprintf(" +%d", len(items)-1)
	}
	text = Truncate(text, width-1-len(more))
	style := PaymentStyle(first.Payment)
	if first.Done {
		style = StyleDim
	}
	return style.Render(text) + StyleYellow.Render(more)
}

// pad right-pads s to width visible cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
