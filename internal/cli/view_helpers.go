package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listWindow returns the [start,end) slice of n rows to draw so the cursor
// stays visible in height rows.
func listWindow(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}

// padRight pads or truncates s to width visible cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return formatter.Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// cursorMark renders the row selector.
func cursorMark(selected bool) string {
	if selected {
		return formatter.StyleGreen.Render("▸ ")
	}
	return "  "
}

// interventionRow renders one selectable intervention line.
func interventionRow(it *domain.InterventionView, selected bool) string {
	numero := formatter.StyleGreen.Render(padRight(it.Numero, 9))
	client := padRight(it.ClientName, 18)
	if selected {
		client = formatter.Bold(client)
	}
	return fmt.Sprintf("%s%s %s  %s  %s  %s %s  %s",
		cursorMark(selected),
		numero,
		formatter.DisplayDate(it.Date),
		padRight(formatter.TimeRange(it.StartTime, it.EndTime), 11),
		client,
		padRight(formatter.PaymentPill(it.Payment), 10),
		padRight(formatter.DonePill(it.Done), 7),
		formatter.Dim(formatter.Truncate(it.Summary, 30)),
	)
}

// matchesFold reports whether haystack contains needle ignoring case and
// accents.
func matchesFold(needle string, haystack ...string) bool {
	n := foldKey(needle)
	if n == "" {
		return true
	}
	for _, h := range haystack {
		if strings.Contains(foldKey(h), n) {
			return true
		}
	}
	return false
}

// filterPrompt renders the inline "/ term█" search line.
func filterPrompt(term string) string {
	return "  " + formatter.StyleYellow.Render("/") + " " + term + "█\n\n"
}

// editFilter applies a key press to a filter term. It returns the new term
// and whether editing continues.
func editFilter(term string, key string) (string, bool) {
	switch key {
	case "esc":
		return "", false
	case "enter":
		return term, false
	case "backspace":
		if r := []rune(term); len(r) > 0 {
			return string(r[:len(r)-1]), true
		}
		return term, true
	}
	if r := []rune(key); len(r) == 1 {
		return term + key, true
	}
	if key == "space" || key == " " {
		return term + " ", true
	}
	return term, true
}

// mutateCmd runs action off the update loop and reports its output,
// reloading the views afterwards.
func mutateCmd(action func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := action(context.Background())
		if err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		return cmdOutputMsg{output: out, refresh: true}
	}
}

func toggleDoneCmd(state *SharedState, it *domain.InterventionView) tea.Cmd {
	id, numero, done := it.ID, it.Numero, !it.Done
	return mutateCmd(func(ctx context.Context) (string, error) {
		if err := state.App.Interventions.SetDone(ctx, id, done); err != nil {
			return "", err
		}
		if done {
			return formatter.Success(numero + " marked done"), nil
		}
		return formatter.Success(numero + " marked todo"), nil
	})
}

// nextPayment cycles through the payment tags in display order.
func nextPayment(p domain.PaymentStatus) domain.PaymentStatus {
	for i, s := range domain.PaymentStatuses {
		if s == p {
			return domain.PaymentStatuses[(i+1)%len(domain.PaymentStatuses)]
		}
	}
	return domain.PaymentStatuses[0]
}

func cyclePaymentCmd(state *SharedState, it *domain.InterventionView) tea.Cmd {
	id, numero := it.ID, it.Numero
	next := nextPayment(it.Payment)
	return mutateCmd(func(ctx context.Context) (string, error) {
		if _, err := state.App.Interventions.Update(ctx, id, service.InterventionPatch{Payment: &next}); err != nil {
			return "", err
		}
		return formatter.Success(fmt.Sprintf("%s payment set to %s", numero, next)), nil
	})
}
