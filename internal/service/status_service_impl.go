package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/clientpro/internal/app"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
)

type statusService struct {
	clients       repository.ClientRepo
	interventions repository.InterventionRepo
	observer      UseCaseObserver
}

func NewStatusService(clients repository.ClientRepo, interventions repository.InterventionRepo, observers ...UseCaseObserver) StatusService {
	return &statusService{clients: clients, interventions: interventions, observer: useCaseObserverOrNoop(observers)}
}

func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (_ *app.StatusResponse, err error) {
	defer observe(ctx, s.observer, "status", time.Now().UTC(), nil, &err)

	now := nowOr(req.Now)
	limit := req.RecentLimit
	if limit <= 0 {
		limit = 5
	}

	active, err := s.clients.Count(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("counting clients: %w", err)
	}
	counts, err := s.interventions.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting interventions: %w", err)
	}
	today, err := s.interventions.ListByDate(ctx, formatDate(todayOf(now)))
	if err != nil {
		return nil, fmt.Errorf("loading today's interventions: %w", err)
	}
	recent, err := s.interventions.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading recent interventions: %w", err)
	}

	return &app.StatusResponse{
		Summary: app.StatusSummary{
			GeneratedAt:   now,
			ActiveClients: active,
			Interventions: counts.Total,
			Todo:          counts.Todo,
			Unpaid:        counts.Unpaid,
		},
		Today:    today,
		Recent:   recent,
		Warnings: overlapWarnings(today),
	}, nil
}

// overlapWarnings lists each overlapping pair of the day once, in the
// order the records were given.
func overlapWarnings(day []*domain.InterventionView) []string {
	var warnings []string
	all := interventionsOf(day)
	for i, it := range all {
		later := all[i+1:]
		for _, c := range scheduler.DetectConflicts(candidateOf(it), later) {
			warnings = append(warnings, fmt.Sprintf("%s (%s-%s) overlaps %s", it.Numero, it.StartTime, it.EndTime, c))
		}
	}
	return warnings
}
