package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/clientpro/internal/contract"
)

const barWidth = 30

// FormatReport renders totals, the payment breakdown, top clients and a
// monthly histogram.
func FormatReport(r *contract.ReportResponse) string {
	var b strings.Builder
	title := fmt.Sprintf("Report %s → %s", r.From.Format("02/01/2006"), r.To.Format("02/01/2006"))
	b.WriteString(Header(title))
	b.WriteString("\n")

	t := r.Totals
	b.WriteString(Field("Interventions", Bold(fmt.Sprintf("%d", t.Interventions))))
	b.WriteString(Field("Done", fmt.Sprintf("%d", t.Done)))
	b.WriteString(Field("Unpaid", StyleRed.Render(fmt.Sprintf("%d", t.Unpaid))))
	b.WriteString(Field("Clients", fmt.Sprintf("%d", t.Clients)))

	b.WriteString("\n" + Bold("  Payments") + "\n")
	for _, p := range r.Payments {
		b.WriteString(fmt.Sprintf("    %s %s\n", pad(PaymentPill(p.Status), 12), Bold(fmt.Sprintf("%d", p.Count))))
	}

	if len(r.TopClients) > 0 {
		b.WriteString("\n" + Bold("  Top clients") + "\n")
		for i, c := range r.TopClients {
			b.WriteString(fmt.Sprintf("    %d. %s %s\n", i+1, pad(c.Name, 28), Dim(fmt.Sprintf("%d", c.Count))))
		}
	}

	if len(r.Monthly) > 0 {
		b.WriteString("\n" + Bold("  By month") + "\n")
		peak := 0
		for _, m := range r.Monthly {
			peak = max(peak, m.Count)
		}
		for _, m := range r.Monthly {
			b.WriteString(fmt.Sprintf("    %s %s %d\n", m.Month.Format("01/2006"), bar(m.Count, peak), m.Count))
		}
	}

	if len(r.Interventions) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatInterventionList(r.Interventions))
	}
	return b.String()
}

func bar(n, peak int) string {
	if peak == 0 {
		return Dim(strings.Repeat("·", barWidth))
	}
	filled := n * barWidth / peak
	if n > 0 && filled == 0 {
		filled = 1
	}
	return StyleGreen.Render(strings.Repeat("█", filled)) + Dim(strings.Repeat("·", barWidth-filled))
}
