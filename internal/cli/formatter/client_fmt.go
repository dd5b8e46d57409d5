package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/domain"
)

// FormatClientList renders clients as a table.
func FormatClientList(clients []*domain.Client) string {
	headers := []string{"ID", "NAME", "KIND", "PHONE", "CITY", "EMAIL"}
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		name := Bold(c.Name)
		if !c.Active {
			name = Dim(c.Name + " (inactive)")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			name,
			KindBadge(c.Kind),
			c.Phone,
			c.City,
			c.Email,
		})
	}
	return RenderTable(headers, rows)
}

// FormatClientDetail renders a client card followed by its interventions.
func FormatClientDetail(c *domain.Client, interventions []*domain.InterventionView) string {
	var b strings.Builder
	b.WriteString(Header(c.Name))
	b.WriteString("\n")
	b.WriteString(Field("ID", c.ID))
	b.WriteString(Field("Kind", string(c.Kind)))
	b.WriteString(Field("Status", ActivePill(c.Active)))
	b.WriteString(Field("Email", c.Email))
	b.WriteString(Field("Phone", joinNonEmpty(" / ", c.Phone, c.Phone2)))
	b.WriteString(Field("Address", joinNonEmpty(", ", c.Address, joinNonEmpty(" ", c.PostalCode, c.City))))
	if c.Notes != "" {
		b.WriteString(Field("Notes", c.Notes))
	}

	b.WriteString("\n")
	if len(interventions) == 0 {
		b.WriteString(Dim("  No interventions yet.") + "\n")
		return b.String()
	}
	b.WriteString(Bold(fmt.Sprintf("  %d interventions", len(interventions))) + "\n\n")
	b.WriteString(FormatInterventionList(interventions))
	return b.String()
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
