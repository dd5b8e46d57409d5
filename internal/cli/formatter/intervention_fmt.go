package formatter

import (
	"strings"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/scheduler"
)

const summaryWidth = 32

// FormatInterventionList renders interventions as a table in the given order.
func FormatInterventionList(items []*domain.InterventionView) string {
	headers := []string{"NUMERO", "DATE", "TIME", "CLIENT", "LOCATION", "PAYMENT", "STATUS", "SUMMARY"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			StyleGreen.Render(it.Numero),
			DisplayDate(it.Date),
			TimeRange(it.StartTime, it.EndTime),
			it.ClientName,
			LocationBadge(it.Location),
			PaymentPill(it.Payment),
			DonePill(it.Done),
			Truncate(it.Summary, summaryWidth),
		})
	}
	return RenderTable(headers, rows)
}

// FormatInterventionDetail renders every field of one intervention.
func FormatInterventionDetail(it *domain.InterventionView) string {
	var b strings.Builder
	b.WriteString(Header(it.Numero))
	b.WriteString("\n")
	b.WriteString(Field("Client", it.ClientName))
	b.WriteString(Field("Phone", it.ClientPhone))
	b.WriteString(Field("Email", it.ClientEmail))
	b.WriteString(Field("Date", DisplayDate(it.Date)))
	b.WriteString(Field("Time", TimeRange(it.StartTime, it.EndTime)))
	b.WriteString(Field("Location", LocationBadge(it.Location)))
	b.WriteString(Field("Payment", PaymentPill(it.Payment)))
	b.WriteString(Field("Status", DonePill(it.Done)))
	b.WriteString(Field("Summary", it.Summary))
	if it.Details != "" {
		b.WriteString("\n" + Dim("  Details") + "\n")
		for _, line := range strings.Split(it.Details, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(Field("ID", Dim(it.ID)))
	return b.String()
}

// FormatConflicts renders overlap warnings. Returns "" when there are none.
func FormatConflicts(conflicts []scheduler.Conflict) string {
	if len(conflicts) == 0 {
		return ""
	}
	return Warning("Overlaps with " + strings.Join(scheduler.ConflictStrings(conflicts), ", "))
}

// FormatSaved reports a stored intervention with any overlap warnings.
func FormatSaved(verb string, it *domain.InterventionView, conflicts []scheduler.Conflict) string {
	msg := Success(verb + " " + Bold(it.Numero) + " " +
		Dim("("+DisplayDate(it.Date)+" "+TimeRange(it.StartTime, it.EndTime)+", "+it.ClientName+")"))
	if w := FormatConflicts(conflicts); w != "" {
		msg += "\n" + w
	}
	return msg
}
