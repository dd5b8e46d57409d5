package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/contract"
)

// FormatStatus renders the dashboard: counters, today's schedule, overlap
// warnings and the most recent interventions.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder
	s := resp.Summary

	counters := strings.Join([]string{
		Bold(fmt.Sprintf("%d", s.ActiveClients)) + Dim(" clients"),
		Bold(fmt.Sprintf("%d", s.Interventions)) + Dim(" interventions"),
		StyleYellow.Render(fmt.Sprintf("%d", s.Todo)) + Dim(" todo"),
		StyleRed.Render(fmt.Sprintf("%d", s.Unpaid)) + Dim(" unpaid"),
	}, Dim("  │  "))
	b.WriteString(RenderBox("ClientPro · "+s.GeneratedAt.Format("02/01/2006"), counters))
	b.WriteString("\n\n")

	b.WriteString(Header("Today"))
	b.WriteString("\n")
	if len(resp.Today) == 0 {
		b.WriteString(Dim("  Nothing scheduled today.") + "\n")
	} else {
		b.WriteString(FormatInterventionList(resp.Today))
	}
	for _, w := range resp.Warnings {
		b.WriteString(Warning(w) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Header("Recent"))
	b.WriteString("\n")
	if len(resp.Recent) == 0 {
		b.WriteString(Dim("  No interventions recorded.") + "\n")
	} else {
		b.WriteString(FormatInterventionList(resp.Recent))
	}
	return b.String()
}
