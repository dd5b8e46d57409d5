package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/app"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
)

type calendarService struct {
	interventions repository.InterventionRepo
	hours         scheduler.HourRange
	observer      UseCaseObserver
}

// NewCalendarService builds week grids over hours. An invalid range falls
// back to scheduler.DefaultHours.
func NewCalendarService(interventions repository.InterventionRepo, hours scheduler.HourRange, observers ...UseCaseObserver) CalendarService {
	if hours.Validate() != nil {
		hours = scheduler.DefaultHours
	}
	return &calendarService{interventions: interventions, hours: hours, observer: useCaseObserverOrNoop(observers)}
}

func (s *calendarService) Week(ctx context.Context, req app.WeekRequest) (_ *app.WeekResponse, err error) {
	defer observe(ctx, s.observer, "week", time.Now().UTC(), map[string]any{"offset": req.Offset}, &err)

	ref, err := weekReference(req)
	if err != nil {
		return nil, err
	}
	start := scheduler.WeekStart(ref)
	end := scheduler.WeekEnd(ref)

	items, err := s.interventions.ListBetween(ctx, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("loading week %s: %w", formatDate(start), err)
	}
	grid := scheduler.BucketWeek(items, start, s.hours)
	return &app.WeekResponse{
		Reference: ref,
		Grid:      grid,
		Total:     grid.Len() + len(grid.Hidden),
	}, nil
}

func weekReference(req app.WeekRequest) (time.Time, error) {
	var ref time.Time
	switch {
	case strings.TrimSpace(req.Date) != "":
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			return time.Time{}, &app.WeekError{Code: app.WeekErrInvalidDate, Message: err.Error(), Err: err}
		}
		ref = d
	case req.Month != 0:
		if req.Month < 1 || req.Month > 12 {
			return time.Time{}, &app.WeekError{
				Code:    app.WeekErrInvalidMonth,
				Message: fmt.Sprintf("month %d out of range", req.Month),
			}
		}
		year := req.Year
		if year == 0 {
			year = nowOr(req.Now).Year()
		}
		ref = time.Date(year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	default:
		ref = todayOf(nowOr(req.Now))
	}
	return ref.AddDate(0, 0, 7*req.Offset), nil
}
