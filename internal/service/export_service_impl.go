package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	ical "github.com/arran4/golang-ical"
)

const (
	icsProductID = "-//clientpro//interventions//FR"
	icsUIDDomain = "@clientpro"
	// icsLocalLayout is a floating DATE-TIME: the wall-clock time as stored.
	icsLocalLayout = "20060102T150405"
)

type exportService struct {
	interventions repository.InterventionRepo
	observer      UseCaseObserver
	now           func() time.Time
}

func NewExportService(interventions repository.InterventionRepo, observers ...UseCaseObserver) ExportService {
	return &exportService{
		interventions: interventions,
		observer:      useCaseObserverOrNoop(observers),
		now:           time.Now,
	}
}

func (s *exportService) ExportICS(ctx context.Context, from, to string, w io.Writer) (n int, err error) {
	fields := map[string]any{"from": from, "to": to}
	defer observe(ctx, s.observer, "export-ics", time.Now().UTC(), fields, &err)

	fromDate, err := domain.ParseDate(from)
	if err != nil {
		return 0, err
	}
	toDate, err := domain.ParseDate(to)
	if err != nil {
		return 0, err
	}
	if toDate.Before(fromDate) {
		return 0, fmt.Errorf("export range %s..%s is empty", from, to)
	}

	items, err := s.interventions.ListBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("loading interventions: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	stamp := s.now().UTC()
	for _, it := range items {
		iv, err := it.Interval()
		if err != nil {
			continue
		}
		addEvent(cal, it, iv, stamp)
		n++
	}
	if err := cal.SerializeTo(w); err != nil {
		return 0, fmt.Errorf("writing calendar: %w", err)
	}
	fields["events"] = n
	return n, nil
}

func addEvent(cal *ical.Calendar, it *domain.InterventionView, iv domain.Interval, stamp time.Time) {
	ev := cal.AddEvent(it.ID + icsUIDDomain)
	ev.SetDtStampTime(stamp)
	ev.SetSummary(eventSummary(it))
	if desc := eventDescription(it); desc != "" {
		ev.SetDescription(desc)
	}
	ev.SetLocation(string(it.Location))

	if iv.AllDay {
		ev.SetAllDayStartAt(iv.Date)
		ev.SetAllDayEndAt(iv.Date.AddDate(0, 0, 1))
		return
	}
	ev.SetProperty(ical.ComponentPropertyDtStart, atTime(iv.Date, iv.Start).Format(icsLocalLayout))
	ev.SetProperty(ical.ComponentPropertyDtEnd, atTime(iv.Date, iv.End).Format(icsLocalLayout))
}

func atTime(d time.Time, t domain.TimeOfDay) time.Time {
	return d.Add(time.Duration(t) * time.Minute)
}

func eventSummary(it *domain.InterventionView) string {
	parts := []string{it.Numero}
	if it.ClientName != "" {
		parts = append(parts, it.ClientName)
	}
	if it.Summary != "" {
		parts = append(parts, it.Summary)
	}
	return strings.Join(parts, " - ")
}

func eventDescription(it *domain.InterventionView) string {
	var lines []string
	if it.Details != "" {
		lines = append(lines, it.Details)
	}
	if it.ClientPhone != "" {
		lines = append(lines, "Tel: "+it.ClientPhone)
	}
	lines = append(lines, "Paiement: "+string(it.Payment))
	return strings.Join(lines, "\n")
}
