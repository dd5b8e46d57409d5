package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom describes the calendar distance from now to t in days,
// weeks or months.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := domain.DateOnly(t).Sub(domain.DateOnly(now))
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// frenchDays are the column labels of the week, Monday first.
var frenchDays = [7]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// DayLabel renders a date as "Lun 09/02".
func DayLabel(d time.Time) string {
	idx := (int(d.Weekday()) + 6) % 7
	return fmt.Sprintf("%s %s", frenchDays[idx], d.Format("02/01"))
}

// DisplayDate renders a stored YYYY-MM-DD date as DD/MM/YYYY, leaving
// unparsable values as they are.
func DisplayDate(s string) string {
	d, err := domain.ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

// TimeRange renders "09:00-12:00", or "all day" when either bound is missing.
func TimeRange(start, end string) string {
	if start == "" || end == "" {
		return "all day"
	}
	return start + "-" + end
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate cuts s to width visible cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// Field renders a "Label:  value" detail line, dimming empty values.
func Field(label, value string) string {
	if value == "" {
		value = Dim("--")
	}
	return fmt.Sprintf("  %-12s %s\n", label+":", value)
}
