package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PaymentStyle returns the style for a payment tag: paid is green, unpaid
// red, free blue.
func PaymentStyle(p domain.PaymentStatus) lipgloss.Style {
	switch p {
	case domain.PaymentPaid:
		return StyleGreen
	case domain.PaymentUnpaid:
		return StyleRed
	case domain.PaymentFree:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PaymentPill renders a payment tag such as "● À payer".
func PaymentPill(p domain.PaymentStatus) string {
	if p == "" {
		return StyleDim.Render("--")
	}
	return PaymentStyle(p).Render("● " + string(p))
}

// DonePill renders the completion flag.
func DonePill(done bool) string {
	if done {
		return StyleGreen.Render("✔ Done")
	}
	return StyleYellow.Render("○ Todo")
}

// LocationBadge renders the location in purple.
func LocationBadge(l domain.Location) string {
	if l == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(string(l))
}

func KindBadge(k domain.ClientKind) string {
	if k == domain.ClientProfessional {
		return StyleBlue.Render("Pro")
	}
	return StyleDim.Render("Part.")
}

// ActivePill marks deactivated clients.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● Active")
	}
	return StyleDim.Render("✖ Inactive")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success prefixes msg with a green check mark.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}

// Warning prefixes msg with a yellow warning sign.
func Warning(msg string) string {
	return StyleYellow.Render("⚠ " + msg)
}

// Error renders an error line the way the shell shows failures.
func Error(err error) string {
	return StyleRed.Render("Error: " + err.Error())
}
