package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/app"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/jinzhu/now"
)

type reportService struct {
	interventions repository.InterventionRepo
	observer      UseCaseObserver
}

func NewReportService(interventions repository.InterventionRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{interventions: interventions, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) Report(ctx context.Context, req app.ReportRequest) (_ *app.ReportResponse, err error) {
	if req.Period == "" {
		req.Period = app.PeriodMonth
	}
	defer observe(ctx, s.observer, "report", time.Now().UTC(), map[string]any{"period": string(req.Period)}, &err)
	from, to, err := reportRange(req)
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = 5
	}
	monthsBack := req.MonthsBack
	if monthsBack <= 0 {
		monthsBack = 6
	}

	items, err := s.interventions.ListBetween(ctx, formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("loading interventions: %w", err)
	}

	firstMonth := now.With(to).BeginningOfMonth().AddDate(0, -(monthsBack - 1), 0)
	history, err := s.interventions.ListBetween(ctx, formatDate(firstMonth), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("loading monthly history: %w", err)
	}

	resp := &app.ReportResponse{
		Period:     req.Period,
		From:       from,
		To:         to,
		Totals:     reportTotals(items),
		Payments:   paymentBreakdown(items),
		TopClients: topClients(items, topN),
		Monthly:    monthlyCounts(history, firstMonth, monthsBack),
	}
	if req.IncludeItems {
		resp.Interventions = items
	}
	return resp, nil
}

// reportRange resolves the inclusive date range of the request. Month and
// year periods run from the start of the current month or year to today.
func reportRange(req app.ReportRequest) (time.Time, time.Time, error) {
	today := todayOf(nowOr(req.Now))
	switch req.Period {
	case app.PeriodMonth:
		return now.With(today).BeginningOfMonth(), today, nil
	case app.PeriodYear:
		return now.With(today).BeginningOfYear(), today, nil
	case app.PeriodCustom:
		if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
			return time.Time{}, time.Time{}, &app.ReportError{
				Code:    app.ReportErrInvalidRange,
				Message: "custom period needs both from and to",
			}
		}
		from, err := domain.ParseDate(req.From)
		if err != nil {
			return time.Time{}, time.Time{}, &app.ReportError{Code: app.ReportErrInvalidRange, Message: err.Error(), Err: err}
		}
		to, err := domain.ParseDate(req.To)
		if err != nil {
			return time.Time{}, time.Time{}, &app.ReportError{Code: app.ReportErrInvalidRange, Message: err.Error(), Err: err}
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, &app.ReportError{
				Code:    app.ReportErrInvalidRange,
				Message: fmt.Sprintf("from %s is after to %s", req.From, req.To),
			}
		}
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, &app.ReportError{
			Code:    app.ReportErrInvalidPeriod,
			Message: fmt.Sprintf("unknown period %q", req.Period),
		}
	}
}

func reportTotals(items []*domain.InterventionView) app.ReportTotals {
	var t app.ReportTotals
	clients := map[string]bool{}
	for _, it := range items {
		t.Interventions++
		if it.Done {
			t.Done++
		}
		if it.Payment == domain.PaymentUnpaid {
			t.Unpaid++
		}
		clients[it.ClientID] = true
	}
	t.Clients = len(clients)
	return t
}

// paymentBreakdown always lists every payment status, zero counts included.
func paymentBreakdown(items []*domain.InterventionView) []app.PaymentCount {
	counts := map[domain.PaymentStatus]int{}
	for _, it := range items {
		counts[it.Payment]++
	}
	out := make([]app.PaymentCount, 0, len(domain.PaymentStatuses))
	for _, p := range domain.PaymentStatuses {
		out = append(out, app.PaymentCount{Status: p, Count: counts[p]})
	}
	return out
}

// topClients ranks clients by intervention count, ties broken by name.
func topClients(items []*domain.InterventionView, n int) []app.ClientTotal {
	byID := map[string]*app.ClientTotal{}
	for _, it := range items {
		ct, ok := byID[it.ClientID]
		if !ok {
			ct = &app.ClientTotal{ClientID: it.ClientID, Name: it.ClientName}
			byID[it.ClientID] = ct
		}
		ct.Count++
	}
	totals := make([]app.ClientTotal, 0, len(byID))
	for _, ct := range byID {
		totals = append(totals, *ct)
	}
	col := nameCollator()
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		if c := col.CompareString(totals[i].Name, totals[j].Name); c != 0 {
			return c < 0
		}
		return totals[i].ClientID < totals[j].ClientID
	})
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// monthlyCounts buckets items into months consecutive months from first.
func monthlyCounts(items []*domain.InterventionView, first time.Time, months int) []app.MonthCount {
	out := make([]app.MonthCount, months)
	index := map[string]int{}
	for i := range out {
		m := first.AddDate(0, i, 0)
		out[i].Month = m
		index[m.Format("2006-01")] = i
	}
	for _, it := range items {
		d, err := it.ParsedDate()
		if err != nil {
			continue
		}
		if i, ok := index[d.Format("2006-01")]; ok {
			out[i].Count++
		}
	}
	return out
}
