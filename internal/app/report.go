package app

import (
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
)

type ReportPeriod string

const (
	PeriodMonth  ReportPeriod = "month"
	PeriodYear   ReportPeriod = "year"
	PeriodCustom ReportPeriod = "custom"
)

// ReportRequest selects a period. PeriodCustom reads From and To
// (YYYY-MM-DD, inclusive); the other periods run up to today.
type ReportRequest struct {
	Now          *time.Time
	Period       ReportPeriod
	From         string
	To           string
	TopN         int
	MonthsBack   int
	IncludeItems bool
}

func NewReportRequest(period ReportPeriod) ReportRequest {
	return ReportRequest{Period: period, TopN: 5, MonthsBack: 6}
}

type PaymentCount struct {
	Status domain.PaymentStatus
	Count  int
}

type ClientTotal struct {
	ClientID string
	Name     string
	Count    int
}

type MonthCount struct {
	Month time.Time // first day of the month
	Count int
}

type ReportTotals struct {
	Interventions int
	Done          int
	Unpaid        int
	Clients       int
}

type ReportResponse struct {
	Period        ReportPeriod
	From          time.Time
	To            time.Time
	Totals        ReportTotals
	Payments      []PaymentCount
	TopClients    []ClientTotal
	Monthly       []MonthCount
	Interventions []*domain.InterventionView
}

type ReportErrorCode string

const (
	ReportErrInvalidPeriod ReportErrorCode = "INVALID_PERIOD"
	ReportErrInvalidRange  ReportErrorCode = "INVALID_RANGE"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ReportError) Unwrap() error { return e.Err }
