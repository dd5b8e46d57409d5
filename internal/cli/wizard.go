package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/cli/formatter"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// clientproHuhTheme styles huh forms with the formatter palette.
func clientproHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(clientproHuhTheme()).WithShowHelp(false)
}

// validateRequired rejects blank input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateDate accepts a YYYY-MM-DD date.
func validateDate(s string) error {
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalTime accepts empty or an HH:MM time.
func validateOptionalTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseTimeOfDay(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM format, e.g. 09:30")
	}
	return nil
}

// validateOptionalEmail accepts empty or something with an @.
func validateOptionalEmail(s string) error {
	if s != "" && !strings.Contains(s, "@") {
		return fmt.Errorf("email address is malformed")
	}
	return nil
}

// validateEndAfter checks the end field against the start the form holds.
func validateEndAfter(start *string) func(string) error {
	return func(s string) error {
		if err := validateOptionalTime(s); err != nil {
			return err
		}
		st, en := strings.TrimSpace(*start), strings.TrimSpace(s)
		if (st == "") != (en == "") {
			return fmt.Errorf("set both times, or neither for an all-day intervention")
		}
		if st == "" {
			return nil
		}
		a, errA := domain.ParseTimeOfDay(st)
		b, errB := domain.ParseTimeOfDay(en)
		if errA == nil && errB == nil && b <= a {
			return domain.ErrInvalidTimeRange
		}
		return nil
	}
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	)
}

func locationOptions() []huh.Option[domain.Location] {
	return []huh.Option[domain.Location]{
		huh.NewOption(string(domain.LocationOnSite), domain.LocationOnSite),
		huh.NewOption(string(domain.LocationRemote), domain.LocationRemote),
	}
}

func paymentOptions() []huh.Option[domain.PaymentStatus] {
	opts := make([]huh.Option[domain.PaymentStatus], 0, len(domain.PaymentStatuses))
	for _, p := range domain.PaymentStatuses {
		opts = append(opts, huh.NewOption(string(p), p))
	}
	return opts
}

func kindOptions() []huh.Option[domain.ClientKind] {
	return []huh.Option[domain.ClientKind]{
		huh.NewOption(string(domain.ClientIndividual), domain.ClientIndividual),
		huh.NewOption(string(domain.ClientProfessional), domain.ClientProfessional),
	}
}
